package rollup

import (
	"strings"

	"github.com/dkoosis/tally/pkg/cucumber"
)

// FeatureSummary is a feature with its rollup.
type FeatureSummary struct {
	Feature *cucumber.Feature
	Rollup  Rollup
}

// Countable reports whether the feature has at least one countable scenario.
func (f FeatureSummary) Countable() bool {
	return f.Rollup.Scenarios.Total() > 0
}

// Project is the aggregate of one result source.
type Project struct {
	Name          string
	Source        string
	Features      []FeatureSummary
	FeatureCount  int // features with at least one countable scenario
	ScenarioCount int // countable scenarios across all features
	Rollup        Rollup

	// Tags is set only when tags are scoped per project.
	Tags *TagIndex
}

// NewProject aggregates the features read from source. Step counts and
// duration cover every scenario with steps, backgrounds and outlines
// included; scenario counts cover countable scenarios only. When withTags is
// set the project gets its own tag index.
func NewProject(source string, features []*cucumber.Feature, calc Calculator, withTags bool) *Project {
	p := &Project{
		Name:     ProjectName(source),
		Source:   source,
		Features: make([]FeatureSummary, 0, len(features)),
	}
	for _, f := range features {
		if f == nil {
			continue
		}
		fs := FeatureSummary{Feature: f, Rollup: calc.Rollup(f.Scenarios, HasSteps)}
		p.Features = append(p.Features, fs)
		if fs.Countable() {
			p.FeatureCount++
		}
		p.ScenarioCount += fs.Rollup.Scenarios.Total()
		p.Rollup.add(fs.Rollup)
	}
	p.Rollup.Status = OverallStatus(p.Rollup.Scenarios.Failed)
	if withTags {
		p.Tags = BuildTagIndex(calc, features...)
	}
	return p
}

// ProjectName derives a display name from a source path: the last path
// element without its extension. Different sources may yield the same name.
func ProjectName(source string) string {
	name := source
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}
