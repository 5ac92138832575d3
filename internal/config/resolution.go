package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dkoosis/tally/internal/logging"
	"github.com/dkoosis/tally/internal/source"
	"github.com/dkoosis/tally/pkg/rollup"
)

// Resolution sources recorded on Resolved.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// CliFlags holds the values of command-line flags. The *Set fields record
// whether the user passed the flag explicitly.
type CliFlags struct {
	ConfigPath     string
	TagScope       string
	OnSourceError  string
	SkippedFails   bool
	UndefinedFails bool
	Format         string
	Theme          string
	NoColor        bool
	OutputDir      string
	Workers        int
	Debug          bool

	TagScopeSet       bool
	OnSourceErrorSet  bool
	SkippedFailsSet   bool
	UndefinedFailsSet bool
	FormatSet         bool
	ThemeSet          bool
	NoColorSet        bool
	OutputDirSet      bool
	WorkersSet        bool
}

// Resolved is the final configuration after applying all priority rules.
type Resolved struct {
	Options       rollup.Options
	OnSourceError source.ErrorPolicy
	Format        string
	Theme         string
	NoColor       bool
	OutputDir     string
	Workers       int
	LogLevel      string

	// Resolution metadata
	ConfigPath          string
	TagScopeSource      string
	OnSourceErrorSource string
	SkippedFailsSource  string
	UndefinedFailsSrc   string
	FormatSource        string
	ThemeSource         string
	NoColorSource       string
}

// Resolve loads the config file named by flags (or the discovered one) and
// merges it with the environment and flags: CLI > env > file > default.
func Resolve(flags CliFlags) (*Resolved, error) {
	file, path, err := LoadFile(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	return ResolveWith(flags, file, path)
}

// ResolveWith merges an already-loaded file config.
func ResolveWith(flags CliFlags, file *FileConfig, path string) (*Resolved, error) {
	if file == nil {
		file = &FileConfig{}
	}
	r := &Resolved{ConfigPath: path}

	var scope, onErr string
	scope, r.TagScopeSource = resolveString(flags.TagScope, flags.TagScopeSet, file.TagScope, DefaultTagScope, "TALLY_TAG_SCOPE")
	onErr, r.OnSourceErrorSource = resolveString(flags.OnSourceError, flags.OnSourceErrorSet, file.OnSourceError, DefaultOnSourceError, "TALLY_ON_SOURCE_ERROR")
	r.Format, r.FormatSource = resolveString(flags.Format, flags.FormatSet, file.Format, DefaultFormat, "TALLY_FORMAT")
	r.Theme, r.ThemeSource = resolveString(flags.Theme, flags.ThemeSet, file.Theme, DefaultTheme, "TALLY_THEME")
	r.OutputDir, _ = resolveString(flags.OutputDir, flags.OutputDirSet, file.OutputDir, DefaultOutputDir, "TALLY_OUTPUT_DIR")
	r.LogLevel, _ = resolveString("", false, file.LogLevel, DefaultLogLevel, "TALLY_LOG_LEVEL")
	if flags.Debug {
		r.LogLevel = "debug"
	}

	r.Options.Policy.SkippedFails, r.SkippedFailsSource = resolveBool(flags.SkippedFails, flags.SkippedFailsSet, file.SkippedFails, "TALLY_SKIPPED_FAILS")
	r.Options.Policy.UndefinedFails, r.UndefinedFailsSrc = resolveBool(flags.UndefinedFails, flags.UndefinedFailsSet, file.UndefinedFails, "TALLY_UNDEFINED_FAILS")
	r.NoColor, r.NoColorSource = resolveBool(flags.NoColor, flags.NoColorSet, file.NoColor, "TALLY_NO_COLOR", "NO_COLOR")

	workers, err := resolveWorkers(flags, file)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	r.Workers = workers

	if r.Options.TagScope, err = rollup.ParseTagScope(scope); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if r.OnSourceError, err = source.ParseErrorPolicy(onErr); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := validateResolved(r); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return r, nil
}

func resolveString(cli string, cliSet bool, file, def string, envKeys ...string) (string, string) {
	if cliSet {
		return cli, SourceCLI
	}
	for _, key := range envKeys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val, SourceEnv
		}
	}
	if file != "" {
		return file, SourceFile
	}
	return def, SourceDefault
}

func resolveBool(cli, cliSet bool, file *bool, envKeys ...string) (bool, string) {
	if cliSet {
		return cli, SourceCLI
	}
	if env := getEnvBool(envKeys...); env != nil {
		return *env, SourceEnv
	}
	if file != nil {
		return *file, SourceFile
	}
	return false, SourceDefault
}

func resolveWorkers(flags CliFlags, file *FileConfig) (int, error) {
	if flags.WorkersSet {
		return flags.Workers, nil
	}
	if val := os.Getenv("TALLY_WORKERS"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("TALLY_WORKERS: %w", err)
		}
		return n, nil
	}
	if file.Workers != nil {
		return *file.Workers, nil
	}
	return DefaultWorkers, nil
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

var validFormats = map[string]bool{
	"auto": true, "terminal": true, "llm": true, "json": true, "table": true,
}

var validThemes = map[string]bool{
	"default": true, "orca": true, "mono": true,
}

func validateResolved(r *Resolved) error {
	if !validFormats[r.Format] {
		return fmt.Errorf("invalid format: %s (must be: auto, terminal, llm, json, table)", r.Format)
	}
	if !validThemes[r.Theme] {
		return fmt.Errorf("invalid theme: %s (must be: default, orca, mono)", r.Theme)
	}
	if r.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got: %d", r.Workers)
	}
	if !logging.ValidLevel(r.LogLevel) {
		return fmt.Errorf("invalid log_level: %s", r.LogLevel)
	}
	return nil
}
