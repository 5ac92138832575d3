// Package rollup aggregates cucumber results into feature, tag, project and
// run-level summaries. It performs no I/O; Build takes already-parsed
// sources and returns a read-only Report.
package rollup

import "github.com/dkoosis/tally/pkg/cucumber"

// Policy decides whether non-passing, non-failing step outcomes fail the
// build. The zero Policy keeps raw step statuses.
type Policy struct {
	SkippedFails   bool `json:"skipped_fails" yaml:"skipped_fails"`
	UndefinedFails bool `json:"undefined_fails" yaml:"undefined_fails"`
}

// StepStatus returns the status a step counts as under p.
func (p Policy) StepStatus(s cucumber.Status) cucumber.Status {
	switch {
	case s == cucumber.StatusSkipped && p.SkippedFails:
		return cucumber.StatusFailed
	case s == cucumber.StatusUndefined && p.UndefinedFails:
		return cucumber.StatusFailed
	default:
		return s
	}
}

// ScenarioStatus is FAILED if any step counts as FAILED under p, otherwise
// PASSED. A scenario of only skipped steps is PASSED under the zero policy.
func (p Policy) ScenarioStatus(sc *cucumber.Scenario) cucumber.Status {
	for _, step := range sc.Steps {
		if p.StepStatus(step.Status) == cucumber.StatusFailed {
			return cucumber.StatusFailed
		}
	}
	return cucumber.StatusPassed
}

// OverallStatus is the status of a feature, tag, project or run with the
// given number of failed scenarios.
func OverallStatus(failed int) cucumber.Status {
	if failed > 0 {
		return cucumber.StatusFailed
	}
	return cucumber.StatusPassed
}
