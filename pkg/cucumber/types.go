// Package cucumber holds the entity model for cucumber JSON results and
// reads result documents into it. Entities are treated as immutable once
// returned from the reader.
package cucumber

import "time"

// Kind distinguishes regular scenarios from backgrounds and outlines.
type Kind int

const (
	KindRegular    Kind = iota
	KindBackground      // shared steps run before each scenario of a feature
	KindOutline         // template expanded into examples
)

func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindOutline:
		return "scenario_outline"
	default:
		return "scenario"
	}
}

// Step is a single executed step.
type Step struct {
	Name     string
	Keyword  string
	Status   Status
	Duration time.Duration
	Error    string // error_message of a failed step, if any
}

// Scenario is one element of a feature: a regular scenario, a background or
// an outline.
type Scenario struct {
	Name    string
	Keyword string
	Kind    Kind
	Line    int
	Steps   []Step
	Tags    []string
}

// Feature is one feature file's results.
type Feature struct {
	URI       string
	Name      string
	Tags      []string
	Scenarios []*Scenario

	// id is the document's own feature id, used when URI is empty.
	id string
}

// ID returns the identifier of the feature file the scenarios came from.
// Falls back to the document id, then the feature name.
func (f *Feature) ID() string {
	switch {
	case f.URI != "":
		return f.URI
	case f.id != "":
		return f.id
	default:
		return f.Name
	}
}
