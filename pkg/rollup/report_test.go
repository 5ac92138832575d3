package rollup_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/dkoosis/tally/pkg/cucumber"
	"github.com/dkoosis/tally/pkg/rollup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSources() []rollup.Source {
	return []rollup.Source{
		{
			Path: "results/web.json",
			Features: []*cucumber.Feature{
				feature("web/login.feature", tags("@smoke"),
					background(passed()),
					scenario("log in", tags("@auth"), passed(), passed()),
					scenario("log out", nil, failed()),
				),
			},
		},
		{
			Path: "results/api.json",
			Features: []*cucumber.Feature{
				feature("api/users.feature", tags("@SMOKE"),
					scenario("list users", nil, passed()),
				),
				feature("api/empty.feature", nil, background(passed())),
			},
		},
	}
}

func TestBuild_GlobalScope(t *testing.T) {
	t.Parallel()

	r, err := rollup.Build(context.Background(), sampleSources(), rollup.Options{})
	require.NoError(t, err)

	assert.Equal(t, rollup.ScopeGlobal, r.Scope)
	require.Len(t, r.Projects, 2)
	for _, p := range r.Projects {
		assert.Nil(t, p.Tags)
	}

	smoke, ok := r.Tags.Lookup("@smoke")
	require.True(t, ok)
	assert.Len(t, smoke.Scenarios, 3, "feature tags from both projects merge case-insensitively")
	assert.Len(t, r.TagIndexes(), 1)

	assert.Equal(t, 2, r.Totals.Projects)
	assert.Equal(t, 2, r.Totals.Features)
	assert.Equal(t, 3, r.Totals.Scenarios)
	assert.Equal(t, rollup.StepCounts{Passed: 5, Failed: 1}, r.Totals.Rollup.Steps)
	assert.False(t, r.Totals.BuildPassed())
	assert.Equal(t, cucumber.StatusFailed, r.Totals.Rollup.Status)
}

func TestBuild_ProjectScope(t *testing.T) {
	t.Parallel()

	r, err := rollup.Build(context.Background(), sampleSources(), rollup.Options{TagScope: rollup.ScopeProject})
	require.NoError(t, err)

	assert.Nil(t, r.Tags)
	indexes := r.TagIndexes()
	require.Len(t, indexes, 2)
	assert.Equal(t, "web", indexes[0].Project)
	assert.Equal(t, "api", indexes[1].Project)

	webSmoke, ok := indexes[0].Index.Lookup("@smoke")
	require.True(t, ok)
	assert.Len(t, webSmoke.Scenarios, 2)

	apiSmoke, ok := indexes[1].Index.Lookup("@smoke")
	require.True(t, ok)
	assert.Len(t, apiSmoke.Scenarios, 1)
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	sources := sampleSources()
	first, err := rollup.Build(context.Background(), sources, rollup.Options{})
	require.NoError(t, err)
	second, err := rollup.Build(context.Background(), sources, rollup.Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, tagNames(first.Tags), tagNames(second.Tags))
	for i, tag := range first.Tags.Tags() {
		assert.Equal(t, tag.Rollup, second.Tags.Tags()[i].Rollup)
		assert.Equal(t, scenarioNames(tag), scenarioNames(second.Tags.Tags()[i]))
	}
}

func TestBuild_PolicyAppliesEverywhere(t *testing.T) {
	t.Parallel()

	sources := []rollup.Source{{
		Path: "p.json",
		Features: []*cucumber.Feature{
			feature("f.feature", tags("@t"), scenario("s", nil, passed(), step(cucumber.StatusSkipped, 0))),
		},
	}}

	lenient, err := rollup.Build(context.Background(), sources, rollup.Options{})
	require.NoError(t, err)
	assert.True(t, lenient.Totals.BuildPassed())

	strict, err := rollup.Build(context.Background(), sources, rollup.Options{Policy: rollup.Policy{SkippedFails: true}})
	require.NoError(t, err)
	assert.False(t, strict.Totals.BuildPassed())
	tag, _ := strict.Tags.Lookup("@t")
	assert.Equal(t, cucumber.StatusFailed, tag.Rollup.Status)
	assert.Equal(t, rollup.Policy{SkippedFails: true}, strict.Policy)
}

func TestBuild_UnknownScope(t *testing.T) {
	t.Parallel()

	_, err := rollup.Build(context.Background(), nil, rollup.Options{TagScope: "team"})
	require.ErrorIs(t, err, rollup.ErrUnknownScope)
}

func TestBuild_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rollup.Build(ctx, sampleSources(), rollup.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_NoSources(t *testing.T) {
	t.Parallel()

	r, err := rollup.Build(context.Background(), nil, rollup.Options{})
	require.NoError(t, err)
	assert.Equal(t, rollup.Totals{Rollup: rollup.Rollup{Status: cucumber.StatusPassed}}, r.Totals)
	assert.True(t, r.Totals.BuildPassed())
	assert.Equal(t, 0, r.Tags.Len())
}

func TestMerge_SumsProjectFields(t *testing.T) {
	t.Parallel()

	calc := rollup.Calculator{}
	var projects []*rollup.Project
	for n := 0; n <= 3; n++ {
		totals := rollup.Merge(projects)

		var want rollup.Totals
		for _, p := range projects {
			want.Features += p.FeatureCount
			want.Scenarios += p.ScenarioCount
			want.Rollup.Steps.Passed += p.Rollup.Steps.Passed
			want.Rollup.Steps.Failed += p.Rollup.Steps.Failed
			want.Rollup.Scenarios.Passed += p.Rollup.Scenarios.Passed
			want.Rollup.Scenarios.Failed += p.Rollup.Scenarios.Failed
			want.Rollup.Duration += p.Rollup.Duration
		}
		assert.Equal(t, n, totals.Projects)
		assert.Equal(t, want.Features, totals.Features)
		assert.Equal(t, want.Scenarios, totals.Scenarios)
		assert.Equal(t, want.Rollup.Steps, totals.Rollup.Steps)
		assert.Equal(t, want.Rollup.Scenarios, totals.Rollup.Scenarios)
		assert.Equal(t, want.Rollup.Duration, totals.Rollup.Duration)

		f := feature(fmt.Sprintf("%d.feature", n), nil,
			background(passed()),
			scenario("ok", nil, passed()),
			scenario("bad", nil, passed(), failed()),
		)
		projects = append(projects, rollup.NewProject(fmt.Sprintf("p%d.json", n), []*cucumber.Feature{f}, calc, false))
	}
}

func TestMerge_DuplicateNamesKept(t *testing.T) {
	t.Parallel()

	calc := rollup.Calculator{}
	f := feature("f.feature", nil, scenario("s", nil, passed()))
	a := rollup.NewProject("ci/one/results.json", []*cucumber.Feature{f}, calc, false)
	b := rollup.NewProject("ci/two/results.json", []*cucumber.Feature{f}, calc, false)

	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, 2, rollup.Merge([]*rollup.Project{a, b}).Projects)
}
