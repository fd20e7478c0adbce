package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"ERROR", LogLevelError},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{" info ", LogLevelInfo},
		{"debug", LogLevelDebug},
		{"TRACE", LogLevelTrace},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelWarn).WithOutput(log.New(&buf, "", 0)).With("nav")

	logger.Info("hidden %d", 1)
	logger.Debug("hidden")
	logger.Warn("page %q not found", "9_X")
	logger.Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `[WARN] nav: page "9_X" not found`)
	assert.Contains(t, out, "[ERROR] nav: boom")
}

func TestDefaultLoggerReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, LogLevelDebug, NewDefaultLogger().GetLevel())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, LogLevelInfo, NewDefaultLogger().GetLevel())
}
