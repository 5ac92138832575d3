// Package pattern defines the semantic data types for tally's report output.
// Patterns hold data only; renderers decide presentation.
package pattern

// PatternType identifies the kind of pattern, used as the "type" key in JSON
// output.
type PatternType string

const (
	PatternTypeSummary     PatternType = "summary"
	PatternTypeLeaderboard PatternType = "leaderboard"
	PatternTypeTestTable   PatternType = "test-table"
)

// Pattern is implemented by Summary, TestTable and Leaderboard.
type Pattern interface {
	Type() PatternType
}
