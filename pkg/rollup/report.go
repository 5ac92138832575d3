package rollup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkoosis/tally/pkg/cucumber"
)

// ErrUnknownScope is returned for a TagScope other than project or global.
var ErrUnknownScope = errors.New("unknown tag scope")

// TagScope selects how tags are indexed. The two scopes are never mixed in
// one report, and their totals must not be compared with each other.
type TagScope string

const (
	ScopeGlobal  TagScope = "global"  // one index over every project
	ScopeProject TagScope = "project" // one index per project
)

// ParseTagScope parses a scope name. Empty means ScopeGlobal.
func ParseTagScope(s string) (TagScope, error) {
	switch TagScope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeProject:
		return ScopeProject, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}

// Options configures Build.
type Options struct {
	Policy   Policy
	TagScope TagScope
}

// Source is one parsed result document. Each source becomes one project.
type Source struct {
	Path     string
	Features []*cucumber.Feature
}

// Report is the frozen result of a run.
type Report struct {
	Scope    TagScope
	Policy   Policy
	Projects []*Project
	Totals   Totals

	// Tags is the run-wide index; nil when Scope is ScopeProject.
	Tags *TagIndex
}

// TagIndexes returns every tag index of the report with the name of the
// project it belongs to, or "" for the run-wide index.
func (r *Report) TagIndexes() []ScopedTags {
	if r.Scope == ScopeGlobal {
		return []ScopedTags{{Index: r.Tags}}
	}
	out := make([]ScopedTags, 0, len(r.Projects))
	for _, p := range r.Projects {
		out = append(out, ScopedTags{Project: p.Name, Source: p.Source, Index: p.Tags})
	}
	return out
}

// ScopedTags pairs a tag index with its owning project.
type ScopedTags struct {
	Project string
	Source  string // path of the owning project's source
	Index   *TagIndex
}

// Build aggregates sources into a Report. Sources are processed in order and
// the result is deterministic for the same input. The context is checked
// between sources.
func Build(ctx context.Context, sources []Source, opts Options) (*Report, error) {
	scope, err := ParseTagScope(string(opts.TagScope))
	if err != nil {
		return nil, err
	}
	calc := Calculator{Policy: opts.Policy}

	r := &Report{
		Scope:    scope,
		Policy:   opts.Policy,
		Projects: make([]*Project, 0, len(sources)),
	}

	var global *tagIndexBuilder
	if scope == ScopeGlobal {
		global = newTagIndexBuilder()
	}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("aggregating %s: %w", src.Path, err)
		}
		r.Projects = append(r.Projects, NewProject(src.Path, src.Features, calc, scope == ScopeProject))
		if global != nil {
			for _, f := range src.Features {
				global.add(f)
			}
		}
	}
	if global != nil {
		r.Tags = global.freeze(calc)
	}
	r.Totals = Merge(r.Projects)
	return r, nil
}
