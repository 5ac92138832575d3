// Package artifact writes a report as a directory of JSON documents: a run
// overview, a feature overview per project, one file per feature, a tag
// overview per tag index and one file per tag. A manifest lists every file.
package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/tally/internal/logging"
	"github.com/dkoosis/tally/pkg/rollup"
)

// ErrNoDir is returned when the writer has no output directory.
var ErrNoDir = errors.New("artifact: output directory not set")

// ManifestFile is the name of the manifest written last.
const ManifestFile = "manifest.json"

const (
	featuresDir = "features"
	tagsDir     = "tags"
)

// Writer writes report artifacts under Dir using at most Workers goroutines.
type Writer struct {
	Dir     string
	Workers int
	Logger  *log.Logger
}

// Manifest describes one artifact run.
type Manifest struct {
	RunID string   `json:"run_id"`
	Files []string `json:"files"` // relative to the output directory, in plan order
}

type job struct {
	name string
	doc  any
}

// Write plans every document for r, writes them in parallel and finishes
// with the manifest. File names are planned up front so they do not depend
// on scheduling.
func (w *Writer) Write(ctx context.Context, r *rollup.Report) (*Manifest, error) {
	if w.Dir == "" {
		return nil, ErrNoDir
	}
	logger := w.Logger
	if logger == nil {
		logger = logging.Default()
	}

	for _, dir := range []string{w.Dir, filepath.Join(w.Dir, featuresDir), filepath.Join(w.Dir, tagsDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	jobs := plan(r)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, w.Workers))
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writeJSON(filepath.Join(w.Dir, j.name), j.doc); err != nil {
				return err
			}
			logger.Debug("artifact written", logging.FieldPath, j.name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &Manifest{RunID: uuid.New().String(), Files: make([]string, 0, len(jobs))}
	for _, j := range jobs {
		m.Files = append(m.Files, j.name)
	}
	if err := writeJSON(filepath.Join(w.Dir, ManifestFile), m); err != nil {
		return nil, err
	}
	logger.Info("artifacts written", logging.FieldDir, w.Dir, logging.FieldFiles, len(m.Files), logging.FieldRunID, m.RunID)
	return m, nil
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// planner hands out unique file names. Names compare case-insensitively so
// the plan is safe on case-folding file systems.
type planner struct {
	jobs  []job
	taken map[string]bool
}

func (p *planner) name(dir, base string) string {
	stem := safeName(base)
	name := path(dir, stem+".json")
	for n := 2; p.taken[strings.ToLower(name)]; n++ {
		name = path(dir, fmt.Sprintf("%s-%d.json", stem, n))
	}
	p.taken[strings.ToLower(name)] = true
	return name
}

func (p *planner) add(name string, doc any) {
	p.jobs = append(p.jobs, job{name: name, doc: doc})
}

func path(dir, file string) string {
	if dir == "" {
		return file
	}
	return dir + "/" + file
}

func plan(r *rollup.Report) []job {
	p := &planner{taken: make(map[string]bool)}

	overview := overviewDoc{
		Scope:       r.Scope,
		Policy:      r.Policy,
		BuildPassed: r.Totals.BuildPassed(),
		Totals:      r.Totals,
		Chart:       PieChart(r.Totals.Rollup.Steps),
		Projects:    make([]projectRow, 0, len(r.Projects)),
	}
	overviewName := p.name("", "overview")
	p.add(overviewName, &overview)

	if r.Scope == rollup.ScopeGlobal {
		overview.TagOverview = planTags(p, r.Policy, "", r.Tags)
	}

	for _, proj := range r.Projects {
		row := projectRow{
			Name:      proj.Name,
			Source:    proj.Source,
			Features:  proj.FeatureCount,
			Scenarios: proj.ScenarioCount,
			Rollup:    proj.Rollup,
		}
		row.FeatureOverview = planFeatures(p, r.Policy, proj)
		if r.Scope == rollup.ScopeProject {
			row.TagOverview = planTags(p, r.Policy, proj.Name, proj.Tags)
		}
		overview.Projects = append(overview.Projects, row)
	}
	return p.jobs
}

func planFeatures(p *planner, policy rollup.Policy, proj *rollup.Project) string {
	doc := &featureOverviewDoc{
		Project:  proj.Name,
		Rollup:   proj.Rollup,
		Chart:    PieChart(proj.Rollup.Steps),
		Features: make([]featureRow, 0, len(proj.Features)),
	}
	name := p.name("", proj.Name+"-feature-overview")
	p.add(name, doc)

	for _, fs := range proj.Features {
		f := fs.Feature
		file := p.name(featuresDir, proj.Name+"-"+f.ID())
		doc.Features = append(doc.Features, featureRow{
			ID:        f.ID(),
			Name:      f.Name,
			Countable: fs.Countable(),
			Rollup:    fs.Rollup,
			File:      file,
		})
		fd := &featureDoc{
			Project: proj.Name,
			ID:      f.ID(),
			Name:    f.Name,
			Tags:    f.Tags,
			Rollup:  fs.Rollup,
		}
		for _, sc := range f.Scenarios {
			fd.Scenarios = append(fd.Scenarios, newScenarioDoc(policy, "", sc, true))
		}
		p.add(file, fd)
	}
	return name
}

func planTags(p *planner, policy rollup.Policy, project string, idx *rollup.TagIndex) string {
	base := "tag-overview"
	if project != "" {
		base = project + "-tag-overview"
	}
	tags := idx.Tags()
	doc := &tagOverviewDoc{
		Project: project,
		Totals:  idx.Totals(),
		Chart:   TagChart(idx),
		Tags:    make([]tagRow, 0, len(tags)),
	}
	name := p.name("", base)
	p.add(name, doc)

	for _, t := range tags {
		fileBase := t.DisplayName()
		if project != "" {
			fileBase = project + "-" + fileBase
		}
		file := p.name(tagsDir, fileBase)
		doc.Tags = append(doc.Tags, tagRow{
			Name:      t.Name,
			Display:   t.DisplayName(),
			Scenarios: len(t.Scenarios),
			Features:  len(t.Features()),
			Rollup:    t.Rollup,
			File:      file,
		})
		td := &tagDoc{Project: project, Name: t.Name, Rollup: t.Rollup}
		for _, st := range t.Scenarios {
			td.Scenarios = append(td.Scenarios, newScenarioDoc(policy, st.FeatureID(), st.Scenario, false))
		}
		p.add(file, td)
	}
	return name
}

// safeName maps a feature ID or tag to a single path element.
func safeName(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".feature")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteByte('_')
		case r < 0x20:
			continue
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ". ")
	if out == "" {
		return "unnamed"
	}
	return out
}
