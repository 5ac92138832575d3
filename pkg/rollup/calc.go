package rollup

import (
	"time"

	"github.com/dkoosis/tally/pkg/cucumber"
)

// StepCounts buckets steps by policy-effective status. Undefined steps are
// reported as Pending.
type StepCounts struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Pending int `json:"pending"`
}

// Total returns the number of counted steps.
func (c StepCounts) Total() int {
	return c.Passed + c.Failed + c.Skipped + c.Pending
}

func (c *StepCounts) add(o StepCounts) {
	c.Passed += o.Passed
	c.Failed += o.Failed
	c.Skipped += o.Skipped
	c.Pending += o.Pending
}

// ScenarioCounts buckets countable scenarios. Skipped scenarios are passed.
type ScenarioCounts struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Total returns the number of countable scenarios.
func (c ScenarioCounts) Total() int {
	return c.Passed + c.Failed
}

// Rollup is the numeric summary of a set of scenarios.
type Rollup struct {
	Steps     StepCounts      `json:"steps"`
	Scenarios ScenarioCounts  `json:"scenarios"`
	Duration  time.Duration   `json:"duration_ns"`
	Status    cucumber.Status `json:"status"`
}

// add sums o into r and recomputes the status.
func (r *Rollup) add(o Rollup) {
	r.Steps.add(o.Steps)
	r.Scenarios.Passed += o.Scenarios.Passed
	r.Scenarios.Failed += o.Scenarios.Failed
	r.Duration += o.Duration
	r.Status = OverallStatus(r.Scenarios.Failed)
}

// Calculator computes rollups under a fixed Policy. The same calculation
// serves features, tags and projects; only the scenario set and step scope
// differ.
type Calculator struct {
	Policy Policy
}

// Rollup summarises scenarios. Steps and durations are counted for every
// scenario accepted by scope; scenario buckets only for Countable ones.
func (c Calculator) Rollup(scenarios []*cucumber.Scenario, scope StepScope) Rollup {
	if scope == nil {
		scope = HasSteps
	}
	var r Rollup
	for _, sc := range scenarios {
		if scope(sc) {
			for _, step := range sc.Steps {
				c.countStep(&r, step)
			}
		}
		if !Countable(sc) {
			continue
		}
		if c.Policy.ScenarioStatus(sc) == cucumber.StatusFailed {
			r.Scenarios.Failed++
		} else {
			r.Scenarios.Passed++
		}
	}
	r.Status = OverallStatus(r.Scenarios.Failed)
	return r
}

func (c Calculator) countStep(r *Rollup, step cucumber.Step) {
	switch c.Policy.StepStatus(step.Status) {
	case cucumber.StatusPassed:
		r.Steps.Passed++
	case cucumber.StatusFailed:
		r.Steps.Failed++
	case cucumber.StatusSkipped:
		r.Steps.Skipped++
	default:
		r.Steps.Pending++
	}
	r.Duration += step.Duration
}
