package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/tally/internal/logging"
)

func TestNewWriter_Levels(t *testing.T) {
	t.Parallel()

	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"bogus":   log.InfoLevel,
	}
	for level, want := range tests {
		logger := logging.NewWriter(&bytes.Buffer{}, level)
		assert.Equal(t, want, logger.GetLevel(), level)
	}
}

func TestNewWriter_StructuredFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "debug")
	logger.Warn("skipping source", logging.FieldPath, "a.json")

	assert.Contains(t, buf.String(), "skipping source")
	assert.Contains(t, buf.String(), "path=a.json")
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	assert.True(t, logging.ValidLevel("Debug"))
	assert.True(t, logging.ValidLevel("warn"))
	assert.False(t, logging.ValidLevel("trace"))
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	logger := logging.NewWriter(&bytes.Buffer{}, "error")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}
