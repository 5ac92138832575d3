package rollup

import "github.com/dkoosis/tally/pkg/cucumber"

// StepScope selects the scenarios whose steps are counted by a Rollup.
type StepScope func(*cucumber.Scenario) bool

// Countable reports whether sc is counted as a scenario: it has steps and is
// neither a background nor an outline.
func Countable(sc *cucumber.Scenario) bool {
	if sc == nil || len(sc.Steps) == 0 {
		return false
	}
	return sc.Kind != cucumber.KindBackground && sc.Kind != cucumber.KindOutline
}

// HasSteps reports whether sc has at least one step, whatever its kind.
// Project-level step totals use this, so background steps are counted there
// even though backgrounds are never counted as scenarios.
func HasSteps(sc *cucumber.Scenario) bool {
	return sc != nil && len(sc.Steps) > 0
}
