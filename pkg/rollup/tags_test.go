package rollup_test

import (
	"testing"

	"github.com/dkoosis/tally/pkg/cucumber"
	"github.com/dkoosis/tally/pkg/rollup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagNames(x *rollup.TagIndex) []string {
	var names []string
	for _, t := range x.Tags() {
		names = append(names, t.Name)
	}
	return names
}

func scenarioNames(t *rollup.TagObject) []string {
	var names []string
	for _, st := range t.Scenarios {
		names = append(names, st.Scenario.Name)
	}
	return names
}

func TestBuildTagIndex_SmokeExample(t *testing.T) {
	t.Parallel()

	f := feature("f1.feature", tags("@smoke"),
		scenario("A", nil, passed(), passed()),
		scenario("B", nil, failed()),
	)
	x := rollup.BuildTagIndex(rollup.Calculator{}, f)

	smoke, ok := x.Lookup("@smoke")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, scenarioNames(smoke))
	assert.Equal(t, 2, smoke.Rollup.Steps.Passed)
	assert.Equal(t, 1, smoke.Rollup.Steps.Failed)
	assert.Equal(t, cucumber.StatusFailed, smoke.Rollup.Status)
	assert.Equal(t, "smoke", smoke.DisplayName())
}

func TestBuildTagIndex_DedupAcrossFeatureAndScenarioTags(t *testing.T) {
	t.Parallel()

	f := feature("f.feature", tags("@smoke"),
		scenario("S", tags("@smoke", "@SMOKE"), passed()),
	)
	x := rollup.BuildTagIndex(rollup.Calculator{}, f)

	require.Equal(t, 1, x.Len())
	smoke := x.Tags()[0]
	assert.Equal(t, "@smoke", smoke.Name, "first spelling wins")
	assert.Len(t, smoke.Scenarios, 1)
}

func TestBuildTagIndex_ScenarioTagsDoNotLeak(t *testing.T) {
	t.Parallel()

	f := feature("f.feature", nil,
		scenario("first", tags("@fast"), passed()),
		scenario("second", tags("@slow"), passed()),
		scenario("third", nil, passed()),
	)
	x := rollup.BuildTagIndex(rollup.Calculator{}, f)

	fast, ok := x.Lookup("@fast")
	require.True(t, ok)
	assert.Equal(t, []string{"first"}, scenarioNames(fast))

	slow, ok := x.Lookup("@slow")
	require.True(t, ok)
	assert.Equal(t, []string{"second"}, scenarioNames(slow))
}

func TestBuildTagIndex_FeatureTagsReachEveryCountableScenario(t *testing.T) {
	t.Parallel()

	f := feature("f.feature", tags("@api"),
		background(passed()),
		scenario("one", nil, passed()),
		outline("template", tags("@api"), passed()),
		scenario("two", tags("@extra"), failed()),
		scenario("no steps", nil),
	)
	x := rollup.BuildTagIndex(rollup.Calculator{}, f)

	api, ok := x.Lookup("@API")
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two"}, scenarioNames(api))
	assert.Equal(t, 1, api.Rollup.Steps.Passed, "background steps are not part of tag rollups")
	assert.Equal(t, rollup.ScenarioCounts{Passed: 1, Failed: 1}, api.Rollup.Scenarios)
	assert.Equal(t, []string{"@api", "@extra"}, tagNames(x))
}

func TestBuildTagIndex_DedupKeyIsFeatureAndName(t *testing.T) {
	t.Parallel()

	f1 := feature("features/A.feature", tags("@t"),
		scenario("Login", nil, passed()),
		scenario("LOGIN", nil, failed()),
	)
	f2 := feature("features/b.feature", tags("@t"),
		scenario("login", nil, passed()),
	)
	f1again := feature("features/a.FEATURE", tags("@T"),
		scenario("login", nil, passed()),
	)
	x := rollup.BuildTagIndex(rollup.Calculator{}, f1, f2, f1again)

	tag, ok := x.Lookup("@t")
	require.True(t, ok)
	require.Len(t, tag.Scenarios, 2)
	assert.Equal(t, "features/A.feature", tag.Scenarios[0].FeatureID())
	assert.Equal(t, "features/b.feature", tag.Scenarios[1].FeatureID())
	assert.Len(t, tag.Features(), 2)
}

func TestBuildTagIndex_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	f1 := feature("1.feature", tags("@b"), scenario("x", tags("@c"), passed()))
	f2 := feature("2.feature", tags("@a"), scenario("y", tags("@b"), passed()))
	x := rollup.BuildTagIndex(rollup.Calculator{}, f1, f2)

	assert.Equal(t, []string{"@b", "@c", "@a"}, tagNames(x))
	b, _ := x.Lookup("@b")
	assert.Equal(t, []string{"x", "y"}, scenarioNames(b))
}

func TestBuildTagIndex_BoundedByCountableScenarios(t *testing.T) {
	t.Parallel()

	features := []*cucumber.Feature{
		feature("1.feature", tags("@all", "@dup"),
			scenario("a", tags("@all"), passed()),
			scenario("b", tags("@dup", "@dup"), failed()),
			background(passed()),
		),
		feature("2.feature", tags("@all"),
			scenario("a", nil, passed()),
			outline("o", tags("@all"), passed()),
		),
	}
	x := rollup.BuildTagIndex(rollup.Calculator{}, features...)
	project := rollup.NewProject("p.json", features, rollup.Calculator{}, false)

	for _, tag := range x.Tags() {
		assert.LessOrEqual(t, len(tag.Scenarios), project.ScenarioCount, tag.Name)
	}
	all, _ := x.Lookup("@all")
	assert.Len(t, all.Scenarios, 3)
}

func TestBuildTagIndex_Totals(t *testing.T) {
	t.Parallel()

	f := feature("f.feature", tags("@x"),
		scenario("a", tags("@y"), passed(), passed()),
		scenario("b", nil, failed()),
	)
	x := rollup.BuildTagIndex(rollup.Calculator{}, f)
	totals := x.Totals()

	assert.Equal(t, 2, totals.Tags)
	assert.Equal(t, 3, totals.Scenarios, "a is counted under both tags")
	assert.Equal(t, rollup.StepCounts{Passed: 4, Failed: 1}, totals.Steps)
	assert.Equal(t, rollup.ScenarioCounts{Passed: 2, Failed: 1}, totals.Outcomes)
}

func TestBuildTagIndex_NoTags(t *testing.T) {
	t.Parallel()

	x := rollup.BuildTagIndex(rollup.Calculator{}, feature("f.feature", nil, scenario("a", nil, passed())))
	assert.Equal(t, 0, x.Len())
	_, ok := x.Lookup("@missing")
	assert.False(t, ok)

	var nilIndex *rollup.TagIndex
	assert.Equal(t, 0, nilIndex.Len())
	assert.Empty(t, nilIndex.Tags())
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wip", rollup.DisplayName("@wip"))
	assert.Equal(t, "wip", rollup.DisplayName("wip"))
}
