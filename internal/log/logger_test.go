package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWithCapture(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, slog.LevelDebug)

	logger.Debug("debug message", String("key", "value"))
	logger.Info("info message", Int("count", 42))
	logger.Warn("warn message", Bool("flag", true))
	logger.Error("error message", Err(errors.New("boom")))

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.NotNil(t, entry["msg"])
		assert.NotNil(t, entry["level"])
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.NewJSONHandler(&buf, nil))

	logger.With(String("dialect", "mysql")).Info("parsed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "mysql", entry["dialect"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), tt.input)
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{Level: "loud", Format: "text"}.Validate())
	assert.Error(t, Config{Level: "info", Format: "xml"}.Validate())
}

func TestConfigure(t *testing.T) {
	defer SetDefault(nil)

	var buf bytes.Buffer
	l := Configure(Config{Level: "debug", Format: "json"}, &buf)
	require.NotNil(t, l)
	assert.Same(t, l, Default())

	Debug("via package")
	assert.Contains(t, buf.String(), "via package")
}

func TestDiscardIsSilent(t *testing.T) {
	// Must not panic and must not write anywhere observable.
	l := Discard()
	l.Error("dropped")
	l.With(String("a", "b")).Debug("dropped")
}

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := AsReporter(NewTextLogger(&buf, slog.LevelDebug))
	r.Report("dialect declined statement")
	assert.Contains(t, buf.String(), "dialect declined statement")

	var got []string
	ReporterFunc(func(msg string) { got = append(got, msg) }).Report("x")
	assert.Equal(t, []string{"x"}, got)
}

func TestLatency(t *testing.T) {
	var buf bytes.Buffer
	Latency(NewJSONLogger(&buf, slog.LevelDebug), time.Now(), "parse")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "operation completed", entry["msg"])
	assert.Equal(t, "parse", entry["operation"])
}
