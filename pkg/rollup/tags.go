package rollup

import (
	"time"

	"github.com/dkoosis/tally/pkg/cucumber"
)

// ScenarioTag is one scenario's membership in a tag.
type ScenarioTag struct {
	Feature  *cucumber.Feature
	Scenario *cucumber.Scenario
}

// FeatureID returns the file identifier of the scenario's feature.
func (s ScenarioTag) FeatureID() string {
	return s.Feature.ID()
}

// TagObject is a tag with the deduplicated scenarios carrying it, in the
// order they were first seen.
type TagObject struct {
	Name      string // spelling of the first occurrence
	Scenarios []ScenarioTag
	Rollup    Rollup

	seen map[scenarioKey]struct{} // nil once frozen
}

// DisplayName is the tag name without its leading "@".
func (t *TagObject) DisplayName() string {
	return DisplayName(t.Name)
}

// Features returns the distinct features contributing scenarios to t.
func (t *TagObject) Features() []*cucumber.Feature {
	var out []*cucumber.Feature
	seen := make(map[*cucumber.Feature]struct{})
	for _, st := range t.Scenarios {
		if _, ok := seen[st.Feature]; ok {
			continue
		}
		seen[st.Feature] = struct{}{}
		out = append(out, st.Feature)
	}
	return out
}

func (t *TagObject) attach(f *cucumber.Feature, sc *cucumber.Scenario) {
	key := newScenarioKey(f, sc)
	if _, dup := t.seen[key]; dup {
		return
	}
	t.seen[key] = struct{}{}
	t.Scenarios = append(t.Scenarios, ScenarioTag{Feature: f, Scenario: sc})
}

func (t *TagObject) scenarios() []*cucumber.Scenario {
	out := make([]*cucumber.Scenario, len(t.Scenarios))
	for i, st := range t.Scenarios {
		out[i] = st.Scenario
	}
	return out
}

// TagTotals sums every tag of an index, as shown on a tag overview. A
// scenario carrying two tags is counted under both.
type TagTotals struct {
	Tags      int            `json:"tags"`
	Scenarios int            `json:"scenarios"`
	Steps     StepCounts     `json:"steps"`
	Outcomes  ScenarioCounts `json:"outcomes"`
	Duration  time.Duration  `json:"duration_ns"`
}

// TagIndex is a frozen set of tags in first-seen order.
type TagIndex struct {
	tags   []*TagObject
	byKey  map[foldedKey]*TagObject
	totals TagTotals
}

// BuildTagIndex indexes the countable scenarios of features by tag and
// computes each tag's rollup with calc.
func BuildTagIndex(calc Calculator, features ...*cucumber.Feature) *TagIndex {
	b := newTagIndexBuilder()
	for _, f := range features {
		b.add(f)
	}
	return b.freeze(calc)
}

// Tags returns the tags in first-seen order.
func (x *TagIndex) Tags() []*TagObject {
	if x == nil {
		return nil
	}
	return x.tags
}

// Lookup finds a tag by name, ignoring case.
func (x *TagIndex) Lookup(name string) (*TagObject, bool) {
	if x == nil {
		return nil, false
	}
	t, ok := x.byKey[fold(name)]
	return t, ok
}

// Len returns the number of distinct tags.
func (x *TagIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.tags)
}

// Totals returns the tag overview totals.
func (x *TagIndex) Totals() TagTotals {
	if x == nil {
		return TagTotals{}
	}
	return x.totals
}

// tagIndexBuilder accumulates tag membership. TagObjects are mutated in
// place through byKey; nothing is removed or reordered.
type tagIndexBuilder struct {
	tags  []*TagObject
	byKey map[foldedKey]*TagObject
}

func newTagIndexBuilder() *tagIndexBuilder {
	return &tagIndexBuilder{byKey: make(map[foldedKey]*TagObject)}
}

// add attributes f's feature tags to each of its countable scenarios, then
// each countable scenario's own tags to that scenario alone.
func (b *tagIndexBuilder) add(f *cucumber.Feature) {
	if f == nil {
		return
	}
	var countable []*cucumber.Scenario
	for _, sc := range f.Scenarios {
		if Countable(sc) {
			countable = append(countable, sc)
		}
	}
	if len(countable) == 0 {
		return
	}

	for _, tag := range f.Tags {
		t := b.tag(tag)
		for _, sc := range countable {
			t.attach(f, sc)
		}
	}
	for _, sc := range countable {
		for _, tag := range sc.Tags {
			b.tag(tag).attach(f, sc)
		}
	}
}

func (b *tagIndexBuilder) tag(name string) *TagObject {
	key := fold(name)
	if t, ok := b.byKey[key]; ok {
		return t
	}
	t := &TagObject{Name: name, seen: make(map[scenarioKey]struct{})}
	b.byKey[key] = t
	b.tags = append(b.tags, t)
	return t
}

// freeze computes rollups and drops the dedup sets. The builder must not be
// used afterwards.
func (b *tagIndexBuilder) freeze(calc Calculator) *TagIndex {
	x := &TagIndex{tags: b.tags, byKey: b.byKey}
	for _, t := range b.tags {
		t.Rollup = calc.Rollup(t.scenarios(), HasSteps)
		t.seen = nil

		x.totals.Tags++
		x.totals.Scenarios += len(t.Scenarios)
		x.totals.Steps.add(t.Rollup.Steps)
		x.totals.Outcomes.Passed += t.Rollup.Scenarios.Passed
		x.totals.Outcomes.Failed += t.Rollup.Scenarios.Failed
		x.totals.Duration += t.Rollup.Duration
	}
	b.tags, b.byKey = nil, nil
	return x
}
