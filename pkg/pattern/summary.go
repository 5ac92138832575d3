package pattern

// SummaryKind identifies what a summary describes, for renderer dispatch.
type SummaryKind string

const (
	SummaryKindRun  SummaryKind = "run"  // totals across all projects
	SummaryKindTags SummaryKind = "tags" // tag overview totals
)

// Summary represents high-level metrics and counts.
type Summary struct {
	Label   string
	Kind    SummaryKind
	Metrics []SummaryItem
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string // e.g., "Scenarios", "Failed steps"
	Value string // formatted value
	Kind  string // "success", "error", "warning" or "info"; selects the color
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
