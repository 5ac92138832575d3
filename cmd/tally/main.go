// tally aggregates cucumber JSON results into feature, tag, project and run
// rollups.
//
// Usage:
//
//	tally report target/cucumber/*.json
//	tally report --tag-scope project --out build/tally reports/
//	tally browse reports/
//
// Output modes for report (auto-detected):
//
//	terminal  styled output (default when TTY)
//	llm       terse plain text (default when piped)
//	json      structured JSON for automation
//	table     ASCII tables
package main

import (
	"os"

	"github.com/dkoosis/tally/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
