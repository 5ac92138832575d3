package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/tally/pkg/pattern"
)

const statusFail = "fail"

// LLM renders patterns as terse plain text optimized for AI consumption.
// Zero ANSI codes, a SCOPE line, failures before passes, passing rows
// collapsed into counts.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns for LLM consumption.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder

	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			l.renderSummary(&sb, v)
		case *pattern.TestTable:
			l.renderTable(&sb, v)
		case *pattern.Leaderboard:
			l.renderLeaderboard(&sb, v)
		}
	}
	return sb.String()
}

func (l *LLM) renderSummary(sb *strings.Builder, s *pattern.Summary) {
	if s.Kind == pattern.SummaryKindRun {
		sb.WriteString("SCOPE: " + s.Label + "\n")
	} else {
		sb.WriteString("\n" + s.Label + "\n")
	}
	for _, m := range s.Metrics {
		sb.WriteString("  " + m.Label + ": " + m.Value + "\n")
	}
}

func (l *LLM) renderTable(sb *strings.Builder, t *pattern.TestTable) {
	sb.WriteString("\n" + t.Label + "\n")

	passed := 0
	for _, item := range t.Results {
		if item.Status != statusFail {
			passed++
			if t.Scope == "feature" {
				continue
			}
		}
		prefix := "  PASS"
		if item.Status == statusFail {
			prefix = "  FAIL"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%d scenarios, steps %d/%d/%d/%d passed/failed/skipped/pending, %s)\n",
			prefix, item.Name, item.Scenarios, item.Passed, item.Failed, item.Skipped, item.Pending, item.Duration))

		if item.Status == statusFail && item.Details != "" {
			writeDetails(sb, item.Details, 3)
		}
	}
	if t.Scope == "feature" && passed > 0 {
		sb.WriteString(fmt.Sprintf("  PASS %d features\n", passed))
	}
}

func (l *LLM) renderLeaderboard(sb *strings.Builder, lb *pattern.Leaderboard) {
	sb.WriteString("\n" + lb.Label + "\n")
	for _, item := range lb.Items {
		line := fmt.Sprintf("  %d. %s %s", item.Rank, item.Name, item.Metric)
		if item.Context != "" {
			line += " [" + item.Context + "]"
		}
		sb.WriteString(line + "\n")
	}
}

func writeDetails(sb *strings.Builder, details string, limit int) {
	lines := strings.Split(details, "\n")
	n := min(limit, len(lines))
	for _, line := range lines[:n] {
		sb.WriteString("    " + line + "\n")
	}
	if len(lines) > limit {
		sb.WriteString(fmt.Sprintf("    ... (%d more lines)\n", len(lines)-limit))
	}
}
