package rollup_test

import (
	"testing"
	"time"

	"github.com/dkoosis/tally/pkg/cucumber"
	"github.com/dkoosis/tally/pkg/rollup"
	"github.com/stretchr/testify/assert"
)

func TestCalculator_Rollup(t *testing.T) {
	t.Parallel()

	scenarios := []*cucumber.Scenario{
		background(step(cucumber.StatusPassed, 5*time.Millisecond)),
		scenario("a", nil,
			step(cucumber.StatusPassed, 10*time.Millisecond),
			step(cucumber.StatusSkipped, 0),
		),
		scenario("b", nil,
			step(cucumber.StatusFailed, 20*time.Millisecond),
			step(cucumber.StatusUndefined, 0),
		),
		outline("o", nil, step(cucumber.StatusPassed, time.Millisecond)),
		scenario("empty", nil),
	}

	r := rollup.Calculator{}.Rollup(scenarios, rollup.HasSteps)

	assert.Equal(t, rollup.StepCounts{Passed: 3, Failed: 1, Skipped: 1, Pending: 1}, r.Steps)
	assert.Equal(t, rollup.ScenarioCounts{Passed: 1, Failed: 1}, r.Scenarios)
	assert.Equal(t, 36*time.Millisecond, r.Duration)
	assert.Equal(t, cucumber.StatusFailed, r.Status)
	assert.Equal(t, 6, r.Steps.Total())
}

func TestCalculator_RollupCountableScope(t *testing.T) {
	t.Parallel()

	scenarios := []*cucumber.Scenario{
		background(passed(), passed()),
		scenario("a", nil, passed()),
	}
	r := rollup.Calculator{}.Rollup(scenarios, rollup.Countable)

	assert.Equal(t, 1, r.Steps.Passed, "background steps are outside the countable scope")
	assert.Equal(t, 1, r.Scenarios.Total())
	assert.Equal(t, cucumber.StatusPassed, r.Status)
}

func TestCalculator_PolicyMovesBuckets(t *testing.T) {
	t.Parallel()

	scenarios := []*cucumber.Scenario{
		scenario("a", nil, passed(), step(cucumber.StatusSkipped, 0), step(cucumber.StatusUndefined, 0)),
	}

	raw := rollup.Calculator{}.Rollup(scenarios, nil)
	assert.Equal(t, rollup.StepCounts{Passed: 1, Skipped: 1, Pending: 1}, raw.Steps)
	assert.Equal(t, cucumber.StatusPassed, raw.Status)

	strict := rollup.Calculator{Policy: rollup.Policy{SkippedFails: true, UndefinedFails: true}}.Rollup(scenarios, nil)
	assert.Equal(t, rollup.StepCounts{Passed: 1, Failed: 2}, strict.Steps)
	assert.Equal(t, rollup.ScenarioCounts{Failed: 1}, strict.Scenarios)
	assert.Equal(t, cucumber.StatusFailed, strict.Status)
}

func TestCalculator_Empty(t *testing.T) {
	t.Parallel()

	r := rollup.Calculator{}.Rollup(nil, rollup.HasSteps)
	assert.Equal(t, rollup.Rollup{Status: cucumber.StatusPassed}, r)
}
