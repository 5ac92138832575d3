package rollup

import (
	"strings"

	"github.com/dkoosis/tally/pkg/cucumber"
	"golang.org/x/text/cases"
)

// foldedKey is a case-folded identity string. Keys are folded once, when the
// owning value is created, and compared with ==.
type foldedKey string

// fold builds a fresh Caser per call; cases.Caser is stateful and not safe
// for concurrent use.
func fold(s string) foldedKey {
	return foldedKey(cases.Fold().String(s))
}

// scenarioKey identifies a scenario within a tag: the feature file it came
// from and its name, both compared case-insensitively.
type scenarioKey struct {
	feature  foldedKey
	scenario foldedKey
}

func newScenarioKey(f *cucumber.Feature, sc *cucumber.Scenario) scenarioKey {
	return scenarioKey{feature: fold(f.ID()), scenario: fold(sc.Name)}
}

// DisplayName strips the leading "@" from a tag name. The "@" stays part of
// the tag's identity.
func DisplayName(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "@")
}
