// Package browse is an interactive terminal browser over a report: projects
// and tags on the left, the selected entry's breakdown on the right.
package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkoosis/tally/pkg/cucumber"
	"github.com/dkoosis/tally/pkg/rollup"
)

// Entry is one selectable row of the browser.
type Entry struct {
	Group  string
	Name   string
	Rollup rollup.Rollup
	Detail string
}

// Failed reports whether the entry rolled up as FAILED.
func (e Entry) Failed() bool {
	return e.Rollup.Status == cucumber.StatusFailed
}

// Entries lists the projects of r followed by every tag index, in report
// order.
func Entries(r *rollup.Report) []Entry {
	var out []Entry
	for _, p := range r.Projects {
		out = append(out, Entry{
			Group:  "Projects",
			Name:   p.Name,
			Rollup: p.Rollup,
			Detail: projectDetail(r.Policy, p),
		})
	}
	names := make(map[string]int, len(r.Projects))
	for _, p := range r.Projects {
		names[p.Name]++
	}
	for _, st := range r.TagIndexes() {
		group := "Tags"
		if st.Project != "" {
			group = "Tags · " + st.Project
			// Projects sharing a name are told apart by source path.
			if names[st.Project] > 1 {
				group += " (" + st.Source + ")"
			}
		}
		for _, t := range st.Index.Tags() {
			out = append(out, Entry{
				Group:  group,
				Name:   t.Name,
				Rollup: t.Rollup,
				Detail: tagDetail(r.Policy, t),
			})
		}
	}
	return out
}

func projectDetail(policy rollup.Policy, p *rollup.Project) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", p.Rollup.Status, p.Source)
	fmt.Fprintf(&sb, "%d features, %d scenarios, %s\n", p.FeatureCount, p.ScenarioCount, formatDuration(p.Rollup.Duration))
	sb.WriteString(stepLine(p.Rollup.Steps) + "\n")

	for _, fs := range p.Features {
		if fs.Rollup.Steps.Total() == 0 {
			continue
		}
		name := fs.Feature.Name
		if name == "" {
			name = fs.Feature.ID()
		}
		fmt.Fprintf(&sb, "\n%s %s (%d/%d scenarios passed, %s)\n", marker(fs.Rollup.Status), name,
			fs.Rollup.Scenarios.Passed, fs.Rollup.Scenarios.Total(), formatDuration(fs.Rollup.Duration))
		for _, sc := range fs.Feature.Scenarios {
			if !rollup.Countable(sc) || policy.ScenarioStatus(sc) != cucumber.StatusFailed {
				continue
			}
			fmt.Fprintf(&sb, "    %s %s\n", marker(cucumber.StatusFailed), sc.Name)
			if step, ok := firstFailed(policy, sc); ok {
				fmt.Fprintf(&sb, "        %s %s\n", strings.TrimSpace(step.Keyword), step.Name)
				if step.Error != "" {
					sb.WriteString(indent(firstLines(step.Error, 5), "        ") + "\n")
				}
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func tagDetail(policy rollup.Policy, t *rollup.TagObject) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", t.Rollup.Status, t.Name)
	fmt.Fprintf(&sb, "%d scenarios in %d features, %s\n", len(t.Scenarios), len(t.Features()), formatDuration(t.Rollup.Duration))
	sb.WriteString(stepLine(t.Rollup.Steps) + "\n\n")
	for _, st := range t.Scenarios {
		fmt.Fprintf(&sb, "%s %s: %s\n", marker(policy.ScenarioStatus(st.Scenario)), st.FeatureID(), st.Scenario.Name)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func firstFailed(policy rollup.Policy, sc *cucumber.Scenario) (cucumber.Step, bool) {
	for _, step := range sc.Steps {
		if policy.StepStatus(step.Status) == cucumber.StatusFailed {
			return step, true
		}
	}
	return cucumber.Step{}, false
}

func marker(s cucumber.Status) string {
	if s == cucumber.StatusFailed {
		return "✗"
	}
	return "✓"
}

func stepLine(s rollup.StepCounts) string {
	return fmt.Sprintf("steps: %d passed, %d failed, %d skipped, %d pending", s.Passed, s.Failed, s.Skipped, s.Pending)
}

func firstLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = append(lines[:n], fmt.Sprintf("... (%d more lines)", len(lines)-n))
	}
	return strings.Join(lines, "\n")
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Round(100*time.Millisecond).Seconds())
}
