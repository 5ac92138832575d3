// Package logging wraps charmbracelet/log for tally's diagnostics. Logs go
// to stderr so report output on stdout stays clean.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // package-level default logger
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// Field names used in structured log lines.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldProject  = "project"
	FieldFeatures = "features"
	FieldSources  = "sources"
	FieldSkipped  = "skipped"
	FieldScope    = "tag_scope"
	FieldFiles    = "files"
	FieldDir      = "dir"
	FieldRunID    = "run_id"
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldFormat   = "format"
)

// New returns a stderr logger at level ("debug", "info", "warn", "error").
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter returns a logger writing to w at level.
func NewWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          "tally",
	})
	setLoggerLevel(logger, level)
	return logger
}

func setLoggerLevel(logger *log.Logger, level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Default returns the package default logger, created at info level.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New("info")
		}
	})
	return defaultLogger
}

// SetLevel changes the level of the default logger.
func SetLevel(level string) {
	setLoggerLevel(Default(), level)
}
