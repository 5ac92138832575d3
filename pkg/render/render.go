// Package render provides output renderers for tally's report patterns.
package render

import "github.com/dkoosis/tally/pkg/pattern"

// Output format names accepted on the command line.
const (
	FormatTerminal = "terminal"
	FormatLLM      = "llm"
	FormatJSON     = "json"
	FormatTable    = "table"
)

// Renderer converts patterns to formatted output. Renderers never fail;
// an encoding problem is reported inside the output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}
