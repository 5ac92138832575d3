package rollup

// Totals is the run-wide sum of project rollups.
type Totals struct {
	Projects  int    `json:"projects"`
	Features  int    `json:"features"`
	Scenarios int    `json:"scenarios"`
	Rollup    Rollup `json:"rollup"`
}

// BuildPassed reports whether no step counted as failed.
func (t Totals) BuildPassed() bool {
	return t.Rollup.Steps.Failed == 0
}

// Merge sums the already-computed fields of projects. Scenarios are not
// revisited, so totals always equal the sum of what each project reports.
func Merge(projects []*Project) Totals {
	var t Totals
	for _, p := range projects {
		if p == nil {
			continue
		}
		t.Projects++
		t.Features += p.FeatureCount
		t.Scenarios += p.ScenarioCount
		t.Rollup.add(p.Rollup)
	}
	t.Rollup.Status = OverallStatus(t.Rollup.Scenarios.Failed)
	return t
}
