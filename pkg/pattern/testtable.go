package pattern

// TestTable lists features, tags or projects with status and step counts.
type TestTable struct {
	Label   string
	Scope   string // "feature", "tag" or "project"
	Results []TestTableItem
}

// TestTableItem is a single row.
type TestTableItem struct {
	Name      string // feature, tag or project name
	Status    string // "pass" or "fail"
	Duration  string // formatted duration
	Scenarios int    // countable scenarios
	Passed    int    // passed steps
	Failed    int    // failed steps
	Skipped   int    // skipped steps
	Pending   int    // undefined steps
	Details   string // first failure or extra info
}

func (t *TestTable) Type() PatternType { return PatternTypeTestTable }
