package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dkoosis/tally/pkg/pattern"
)

// Table renders patterns as plain ASCII tables, one per TestTable, suitable
// for CI logs and pasting into tickets.
type Table struct{}

// NewTable creates a table renderer.
func NewTable() *Table {
	return &Table{}
}

// Render formats all patterns as tables.
func (r *Table) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			sections = append(sections, r.summary(v))
		case *pattern.TestTable:
			if len(v.Results) > 0 {
				sections = append(sections, r.testTable(v))
			}
		case *pattern.Leaderboard:
			if len(v.Items) > 0 {
				sections = append(sections, r.leaderboard(v))
			}
		}
	}
	return strings.Join(sections, "\n")
}

func (r *Table) summary(s *pattern.Summary) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(s.Label)
	for _, m := range s.Metrics {
		t.AppendRow(table.Row{m.Label, m.Value})
	}
	return t.Render() + "\n"
}

func (r *Table) testTable(tt *pattern.TestTable) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(tt.Label)
	t.AppendHeader(table.Row{strings.ToUpper(scopeHeader(tt.Scope)), "STATUS", "SCENARIOS", "PASSED", "FAILED", "SKIPPED", "PENDING", "DURATION"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	var scenarios, passed, failed, skipped, pending int
	for _, item := range tt.Results {
		t.AppendRow(table.Row{
			item.Name, strings.ToUpper(item.Status), item.Scenarios,
			item.Passed, item.Failed, item.Skipped, item.Pending, item.Duration,
		})
		scenarios += item.Scenarios
		passed += item.Passed
		failed += item.Failed
		skipped += item.Skipped
		pending += item.Pending
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(tt.Results)), "", scenarios, passed, failed, skipped, pending, ""})
	return t.Render() + "\n"
}

func (r *Table) leaderboard(lb *pattern.Leaderboard) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(lb.Label)
	t.AppendHeader(table.Row{"#", "NAME", strings.ToUpper(lb.MetricName), "PROJECT"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	for _, item := range lb.Items {
		t.AppendRow(table.Row{item.Rank, item.Name, item.Metric, item.Context})
	}
	return t.Render() + "\n"
}

func scopeHeader(scope string) string {
	if scope == "" {
		return "name"
	}
	return scope
}
