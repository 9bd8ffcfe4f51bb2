package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogAdapter_WithNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	require.NotNil(t, adapter)
	assert.NotNil(t, adapter.Logger())
}

func TestSlogAdapter_ForwardsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Debug("debug message", "k", "d")
	adapter.Info("info message", "k", "i")
	adapter.Warn("warn message", "k", "w")
	adapter.Error("error message", "k", "e")

	out := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "error message", "k=e"} {
		assert.Contains(t, out, want)
	}
	assert.Same(t, logger, adapter.Logger())
}

func TestDiscard(t *testing.T) {
	// Must not panic and must satisfy the interface.
	var l Logger = Discard()
	l.Info("dropped", "key", "value")
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = (*SlogAdapter)(nil)
}
