// Package mapper converts aggregated reports into visualization patterns.
package mapper

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dkoosis/tally/pkg/cucumber"
	"github.com/dkoosis/tally/pkg/pattern"
	"github.com/dkoosis/tally/pkg/rollup"
)

// slowestFeatures caps the duration leaderboard.
const slowestFeatures = 5

// FromReport converts a report into patterns.
// Returns: run Summary + project table (when there are several projects) +
// feature table per project + tag Summary and table per tag index +
// slowest-feature Leaderboard.
func FromReport(r *rollup.Report) []pattern.Pattern {
	patterns := []pattern.Pattern{runSummary(r)}

	if len(r.Projects) > 1 {
		patterns = append(patterns, projectTable(r.Projects))
	}
	for _, p := range r.Projects {
		if t := featureTable(r.Policy, p); len(t.Results) > 0 {
			patterns = append(patterns, t)
		}
	}
	for _, st := range r.TagIndexes() {
		if st.Index.Len() == 0 {
			continue
		}
		patterns = append(patterns, tagSummary(r.Scope, st), tagTable(r.Scope, st))
	}
	if lb := slowest(r.Projects, slowestFeatures); lb != nil {
		patterns = append(patterns, lb)
	}
	return patterns
}

func runSummary(r *rollup.Report) *pattern.Summary {
	t := r.Totals
	steps := t.Rollup.Steps
	var metrics []pattern.SummaryItem

	if t.Rollup.Scenarios.Failed > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Failed", Value: fmt.Sprintf("%d/%d scenarios", t.Rollup.Scenarios.Failed, t.Scenarios), Kind: "error",
		})
	}
	passKind := "success"
	if t.Rollup.Scenarios.Failed > 0 {
		passKind = "info"
	}
	metrics = append(metrics, pattern.SummaryItem{
		Label: "Passed", Value: fmt.Sprintf("%d/%d scenarios", t.Rollup.Scenarios.Passed, t.Scenarios), Kind: passKind,
	})
	metrics = append(metrics, pattern.SummaryItem{
		Label: "Steps", Value: stepBreakdown(steps), Kind: stepKind(steps),
	})
	metrics = append(metrics, pattern.SummaryItem{
		Label: "Features", Value: fmt.Sprintf("%d", t.Features), Kind: "info",
	})
	metrics = append(metrics, pattern.SummaryItem{
		Label: "Projects", Value: fmt.Sprintf("%d", t.Projects), Kind: "info",
	})
	if p := policyLabel(r.Policy); p != "" {
		metrics = append(metrics, pattern.SummaryItem{Label: "Policy", Value: p, Kind: "warning"})
	}

	label := fmt.Sprintf("PASS %d scenarios in %d features (%s)",
		t.Scenarios, t.Features, formatDuration(t.Rollup.Duration))
	if !t.BuildPassed() {
		label = fmt.Sprintf("FAIL %d/%d scenarios, %d failed steps (%s)",
			t.Rollup.Scenarios.Failed, t.Scenarios, steps.Failed, formatDuration(t.Rollup.Duration))
	}
	return &pattern.Summary{Label: label, Kind: pattern.SummaryKindRun, Metrics: metrics}
}

func projectTable(projects []*rollup.Project) *pattern.TestTable {
	items := make([]pattern.TestTableItem, 0, len(projects))
	for _, p := range projects {
		item := rowFor(p.Name, p.Rollup)
		item.Details = fmt.Sprintf("%d features", p.FeatureCount)
		items = append(items, item)
	}
	return &pattern.TestTable{Label: fmt.Sprintf("Projects (%d)", len(projects)), Scope: "project", Results: items}
}

func featureTable(policy rollup.Policy, p *rollup.Project) *pattern.TestTable {
	items := make([]pattern.TestTableItem, 0, len(p.Features))
	for _, fs := range p.Features {
		if fs.Rollup.Steps.Total() == 0 {
			continue
		}
		item := rowFor(featureName(fs.Feature), fs.Rollup)
		item.Details = firstFailure(policy, fs.Feature, fs.Rollup)
		items = append(items, item)
	}
	sortFailedFirst(items)

	label := fmt.Sprintf("PASS %s (%d features)", p.Name, p.FeatureCount)
	if p.Rollup.Status == cucumber.StatusFailed {
		label = fmt.Sprintf("FAIL %s (%d/%d scenarios failed)", p.Name, p.Rollup.Scenarios.Failed, p.ScenarioCount)
	}
	return &pattern.TestTable{Label: label, Scope: "feature", Results: items}
}

func tagSummary(scope rollup.TagScope, st rollup.ScopedTags) *pattern.Summary {
	totals := st.Index.Totals()
	kind := "success"
	if totals.Outcomes.Failed > 0 {
		kind = "error"
	}
	return &pattern.Summary{
		Label: "Tag overview " + scopeLabel(scope, st.Project),
		Kind:  pattern.SummaryKindTags,
		Metrics: []pattern.SummaryItem{
			{Label: "Tags", Value: fmt.Sprintf("%d", totals.Tags), Kind: "info"},
			{Label: "Tagged scenarios", Value: fmt.Sprintf("%d passed, %d failed", totals.Outcomes.Passed, totals.Outcomes.Failed), Kind: kind},
			{Label: "Tagged steps", Value: stepBreakdown(totals.Steps), Kind: stepKind(totals.Steps)},
			{Label: "Duration", Value: formatDuration(totals.Duration), Kind: "info"},
		},
	}
}

func tagTable(scope rollup.TagScope, st rollup.ScopedTags) *pattern.TestTable {
	tags := st.Index.Tags()
	items := make([]pattern.TestTableItem, 0, len(tags))
	for _, tag := range tags {
		item := rowFor(tag.Name, tag.Rollup)
		item.Details = fmt.Sprintf("%d features", len(tag.Features()))
		items = append(items, item)
	}
	return &pattern.TestTable{
		Label:   fmt.Sprintf("Tags %s (%d)", scopeLabel(scope, st.Project), len(tags)),
		Scope:   "tag",
		Results: items,
	}
}

func slowest(projects []*rollup.Project, n int) *pattern.Leaderboard {
	var items []pattern.LeaderboardItem
	for _, p := range projects {
		for _, fs := range p.Features {
			if fs.Rollup.Duration <= 0 {
				continue
			}
			items = append(items, pattern.LeaderboardItem{
				Name:    featureName(fs.Feature),
				Metric:  formatDuration(fs.Rollup.Duration),
				Value:   fs.Rollup.Duration.Seconds(),
				Context: p.Name,
			})
		}
	}
	if len(items) == 0 {
		return nil
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
	total := len(items)
	if len(items) > n {
		items = items[:n]
	}
	for i := range items {
		items[i].Rank = i + 1
	}
	return &pattern.Leaderboard{
		Label:      "Slowest features",
		MetricName: "Duration",
		Items:      items,
		TotalCount: total,
		ShowRank:   true,
	}
}

func rowFor(name string, r rollup.Rollup) pattern.TestTableItem {
	status := "pass"
	if r.Status == cucumber.StatusFailed {
		status = "fail"
	}
	return pattern.TestTableItem{
		Name:      name,
		Status:    status,
		Duration:  formatDuration(r.Duration),
		Scenarios: r.Scenarios.Total(),
		Passed:    r.Steps.Passed,
		Failed:    r.Steps.Failed,
		Skipped:   r.Steps.Skipped,
		Pending:   r.Steps.Pending,
	}
}

func sortFailedFirst(items []pattern.TestTableItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Status == "fail" && items[j].Status != "fail"
	})
}

func featureName(f *cucumber.Feature) string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID()
}

// firstFailure describes the first step of a failed feature that counts as
// failed under policy.
func firstFailure(policy rollup.Policy, f *cucumber.Feature, r rollup.Rollup) string {
	if r.Steps.Failed == 0 {
		return ""
	}
	for _, sc := range f.Scenarios {
		for _, step := range sc.Steps {
			if policy.StepStatus(step.Status) != cucumber.StatusFailed {
				continue
			}
			msg := strings.TrimSpace(step.Keyword + " " + step.Name)
			if sc.Name != "" {
				msg = sc.Name + ": " + msg
			}
			if step.Error != "" {
				msg += "\n" + truncateLines(strings.Split(strings.TrimSpace(step.Error), "\n"), 3)
			}
			return msg
		}
	}
	return ""
}

func scopeLabel(scope rollup.TagScope, project string) string {
	if scope == rollup.ScopeProject {
		return fmt.Sprintf("[project %s]", project)
	}
	return "[all projects]"
}

func policyLabel(p rollup.Policy) string {
	var parts []string
	if p.SkippedFails {
		parts = append(parts, "skipped steps fail")
	}
	if p.UndefinedFails {
		parts = append(parts, "undefined steps fail")
	}
	return strings.Join(parts, ", ")
}

func stepBreakdown(s rollup.StepCounts) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped, %d pending", s.Passed, s.Failed, s.Skipped, s.Pending)
}

func stepKind(s rollup.StepCounts) string {
	switch {
	case s.Failed > 0:
		return "error"
	case s.Skipped > 0 || s.Pending > 0:
		return "warning"
	default:
		return "success"
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func truncateLines(lines []string, max int) string {
	if len(lines) <= max {
		return strings.Join(lines, "\n")
	}
	result := strings.Join(lines[:max], "\n")
	return result + fmt.Sprintf("\n... (%d more lines)", len(lines)-max)
}
