// Package source turns command-line paths into parsed result sources for
// the rollup engine, applying the configured policy when a source cannot be
// read.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dkoosis/tally/internal/detect"
	"github.com/dkoosis/tally/internal/logging"
	"github.com/dkoosis/tally/pkg/cucumber"
	"github.com/dkoosis/tally/pkg/rollup"
)

// StdinPath is the path argument that reads a report from stdin.
const StdinPath = "-"

var (
	// ErrNoSources is returned when the given paths match no report files.
	ErrNoSources = errors.New("no result sources")
	// ErrUnsupportedFormat is returned for input that is not a cucumber JSON report.
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

// ErrorPolicy decides what happens when one source fails to load.
type ErrorPolicy string

const (
	Abort ErrorPolicy = "abort" // fail the run on the first bad source
	Skip  ErrorPolicy = "skip"  // log, record and continue without it
)

// ParseErrorPolicy parses a policy name. Empty means Abort.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Abort:
		return Abort, nil
	case Skip:
		return Skip, nil
	default:
		return "", fmt.Errorf("unknown source error policy %q (want abort or skip)", s)
	}
}

// Skipped records a source dropped under the Skip policy.
type Skipped struct {
	Path string
	Err  error
}

// Result is the outcome of Load.
type Result struct {
	Sources []rollup.Source
	Skipped []Skipped
}

// Loader reads result sources.
type Loader struct {
	OnError ErrorPolicy
	Logger  *log.Logger
	Stdin   io.Reader
}

// Load expands entries and parses every report found, in order. Under Abort
// the first failure is returned; under Skip failed sources are logged and
// listed in Result.Skipped. ErrNoSources is returned when nothing was loaded.
func (l *Loader) Load(ctx context.Context, entries []string) (*Result, error) {
	logger := l.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	paths, err := Expand(entries)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		features, err := l.loadOne(path)
		if err != nil {
			if l.OnError != Skip {
				return nil, err
			}
			logger.Warn("skipping source", logging.FieldPath, path, logging.FieldError, err)
			res.Skipped = append(res.Skipped, Skipped{Path: path, Err: err})
			continue
		}
		logger.Debug("loaded source", logging.FieldPath, path, logging.FieldFeatures, len(features))
		res.Sources = append(res.Sources, rollup.Source{Path: sourcePath(path), Features: features})
	}

	if len(res.Sources) == 0 {
		return res, ErrNoSources
	}
	warnDuplicateNames(logger, res.Sources)
	return res, nil
}

func (l *Loader) loadOne(path string) ([]*cucumber.Feature, error) {
	var (
		data []byte
		err  error
	)
	if path == StdinPath {
		if l.Stdin == nil {
			return nil, fmt.Errorf("reading stdin: no input")
		}
		data, err = io.ReadAll(l.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cleaned := cucumber.Clean(data)
	if len(cleaned) > 0 {
		if format := detect.Sniff(cleaned); format != detect.CucumberJSON {
			return nil, fmt.Errorf("%s: %w (%s)", path, ErrUnsupportedFormat, format)
		}
	}
	features, err := cucumber.ParseBytes(cleaned)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return features, nil
}

func sourcePath(path string) string {
	if path == StdinPath {
		return "stdin"
	}
	return path
}

// warnDuplicateNames logs sources whose derived project names collide. The
// projects are kept as they are.
func warnDuplicateNames(logger *log.Logger, sources []rollup.Source) {
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		name := rollup.ProjectName(src.Path)
		if first, ok := seen[name]; ok {
			logger.Warn("duplicate project name", logging.FieldProject, name,
				logging.FieldPath, src.Path, "first", first)
			continue
		}
		seen[name] = src.Path
	}
}

// Expand resolves files, directories (every *.json below them) and glob
// patterns into report paths, keeping argument order and dropping repeats.
func Expand(entries []string) ([]string, error) {
	var paths []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == "":
			continue
		case entry == StdinPath:
			add(entry)
		case strings.ContainsAny(entry, "*?["):
			matches, err := filepath.Glob(entry)
			if err != nil {
				return nil, fmt.Errorf("expanding glob %q: %w", entry, err)
			}
			for _, m := range matches {
				add(filepath.Clean(m))
			}
		default:
			entry = filepath.Clean(entry)
			info, err := os.Stat(entry)
			if err != nil {
				return nil, fmt.Errorf("stat %q: %w", entry, err)
			}
			if !info.IsDir() {
				add(entry)
				continue
			}
			files, err := collectReports(entry)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}
		}
	}
	return paths, nil
}

func collectReports(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}
