package rollup_test

import (
	"testing"

	"github.com/dkoosis/tally/pkg/cucumber"
	"github.com/dkoosis/tally/pkg/rollup"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_StepStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy rollup.Policy
		in     cucumber.Status
		want   cucumber.Status
	}{
		{"raw passed", rollup.Policy{}, cucumber.StatusPassed, cucumber.StatusPassed},
		{"raw skipped", rollup.Policy{}, cucumber.StatusSkipped, cucumber.StatusSkipped},
		{"raw undefined", rollup.Policy{}, cucumber.StatusUndefined, cucumber.StatusUndefined},
		{"skipped fails", rollup.Policy{SkippedFails: true}, cucumber.StatusSkipped, cucumber.StatusFailed},
		{"skipped fails leaves undefined", rollup.Policy{SkippedFails: true}, cucumber.StatusUndefined, cucumber.StatusUndefined},
		{"undefined fails", rollup.Policy{UndefinedFails: true}, cucumber.StatusUndefined, cucumber.StatusFailed},
		{"undefined fails leaves passed", rollup.Policy{UndefinedFails: true}, cucumber.StatusPassed, cucumber.StatusPassed},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.policy.StepStatus(tt.in))
		})
	}
}

func TestPolicy_ScenarioStatus(t *testing.T) {
	t.Parallel()

	skippedOnly := scenario("s", nil, step(cucumber.StatusSkipped, 0), step(cucumber.StatusSkipped, 0))
	assert.Equal(t, cucumber.StatusPassed, rollup.Policy{}.ScenarioStatus(skippedOnly))
	assert.Equal(t, cucumber.StatusFailed, rollup.Policy{SkippedFails: true}.ScenarioStatus(skippedOnly))

	undefined := scenario("u", nil, passed(), step(cucumber.StatusUndefined, 0))
	assert.Equal(t, cucumber.StatusPassed, rollup.Policy{}.ScenarioStatus(undefined))
	assert.Equal(t, cucumber.StatusFailed, rollup.Policy{UndefinedFails: true}.ScenarioStatus(undefined))

	oneFailure := scenario("f", nil, passed(), passed(), failed(), passed())
	assert.Equal(t, cucumber.StatusFailed, rollup.Policy{}.ScenarioStatus(oneFailure))
}

func TestOverallStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cucumber.StatusPassed, rollup.OverallStatus(0))
	assert.Equal(t, cucumber.StatusFailed, rollup.OverallStatus(1))
	assert.Equal(t, cucumber.StatusFailed, rollup.OverallStatus(12))
}

func TestEligibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sc        *cucumber.Scenario
		countable bool
		hasSteps  bool
	}{
		{"regular with steps", scenario("a", nil, passed()), true, true},
		{"regular without steps", scenario("b", nil), false, false},
		{"background with steps", background(passed()), false, true},
		{"outline with steps", outline("o", nil, passed()), false, true},
		{"empty background", background(), false, false},
		{"nil", nil, false, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.countable, rollup.Countable(tt.sc))
			assert.Equal(t, tt.hasSteps, rollup.HasSteps(tt.sc))
		})
	}
}
