package artifact

import (
	"time"

	"github.com/dkoosis/tally/pkg/cucumber"
	"github.com/dkoosis/tally/pkg/rollup"
)

// ChartItem is one slice of the step pie chart.
type ChartItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// PieChart returns the step buckets in chart order.
func PieChart(s rollup.StepCounts) []ChartItem {
	return []ChartItem{
		{Label: "Passed", Value: s.Passed},
		{Label: "Failed", Value: s.Failed},
		{Label: "Skipped", Value: s.Skipped},
		{Label: "Pending", Value: s.Pending},
	}
}

// TagChartRow is one bar group of the tag overview chart.
type TagChartRow struct {
	Tag             string `json:"tag"`
	ScenariosPassed int    `json:"scenarios_passed"`
	ScenariosFailed int    `json:"scenarios_failed"`
	StepsPassed     int    `json:"steps_passed"`
	StepsFailed     int    `json:"steps_failed"`
	StepsSkipped    int    `json:"steps_skipped"`
	StepsPending    int    `json:"steps_pending"`
}

// TagChart returns one row per tag in index order.
func TagChart(idx *rollup.TagIndex) []TagChartRow {
	tags := idx.Tags()
	rows := make([]TagChartRow, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, TagChartRow{
			Tag:             t.DisplayName(),
			ScenariosPassed: t.Rollup.Scenarios.Passed,
			ScenariosFailed: t.Rollup.Scenarios.Failed,
			StepsPassed:     t.Rollup.Steps.Passed,
			StepsFailed:     t.Rollup.Steps.Failed,
			StepsSkipped:    t.Rollup.Steps.Skipped,
			StepsPending:    t.Rollup.Steps.Pending,
		})
	}
	return rows
}

type overviewDoc struct {
	Scope       rollup.TagScope `json:"tag_scope"`
	Policy      rollup.Policy   `json:"policy"`
	BuildPassed bool            `json:"build_passed"`
	Totals      rollup.Totals   `json:"totals"`
	Chart       []ChartItem     `json:"chart"`
	Projects    []projectRow    `json:"projects"`
	TagOverview string          `json:"tag_overview,omitempty"`
}

type projectRow struct {
	Name            string        `json:"name"`
	Source          string        `json:"source"`
	Features        int           `json:"features"`
	Scenarios       int           `json:"scenarios"`
	Rollup          rollup.Rollup `json:"rollup"`
	FeatureOverview string        `json:"feature_overview"`
	TagOverview     string        `json:"tag_overview,omitempty"`
}

type featureOverviewDoc struct {
	Project  string        `json:"project"`
	Rollup   rollup.Rollup `json:"rollup"`
	Chart    []ChartItem   `json:"chart"`
	Features []featureRow  `json:"features"`
}

type featureRow struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Countable bool          `json:"countable"`
	Rollup    rollup.Rollup `json:"rollup"`
	File      string        `json:"file"`
}

type featureDoc struct {
	Project   string        `json:"project"`
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Tags      []string      `json:"tags,omitempty"`
	Rollup    rollup.Rollup `json:"rollup"`
	Scenarios []scenarioDoc `json:"scenarios"`
}

type scenarioDoc struct {
	Feature string          `json:"feature,omitempty"`
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Tags    []string        `json:"tags,omitempty"`
	Status  cucumber.Status `json:"status"`
	Steps   []stepDoc       `json:"steps,omitempty"`
}

type stepDoc struct {
	Keyword  string          `json:"keyword"`
	Name     string          `json:"name"`
	Status   cucumber.Status `json:"status"`
	Duration time.Duration   `json:"duration_ns"`
	Error    string          `json:"error,omitempty"`
}

type tagOverviewDoc struct {
	Project string           `json:"project,omitempty"`
	Totals  rollup.TagTotals `json:"totals"`
	Chart   []TagChartRow    `json:"chart"`
	Tags    []tagRow         `json:"tags"`
}

type tagRow struct {
	Name      string        `json:"name"`
	Display   string        `json:"display"`
	Scenarios int           `json:"scenarios"`
	Features  int           `json:"features"`
	Rollup    rollup.Rollup `json:"rollup"`
	File      string        `json:"file"`
}

type tagDoc struct {
	Project   string        `json:"project,omitempty"`
	Name      string        `json:"name"`
	Rollup    rollup.Rollup `json:"rollup"`
	Scenarios []scenarioDoc `json:"scenarios"`
}

func newScenarioDoc(policy rollup.Policy, feature string, sc *cucumber.Scenario, withSteps bool) scenarioDoc {
	doc := scenarioDoc{
		Feature: feature,
		Name:    sc.Name,
		Kind:    sc.Kind.String(),
		Tags:    sc.Tags,
		Status:  policy.ScenarioStatus(sc),
	}
	if !withSteps {
		return doc
	}
	for _, st := range sc.Steps {
		doc.Steps = append(doc.Steps, stepDoc{
			Keyword:  st.Keyword,
			Name:     st.Name,
			Status:   policy.StepStatus(st.Status),
			Duration: st.Duration,
			Error:    st.Error,
		})
	}
	return doc
}
