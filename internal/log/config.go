package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Config represents logging configuration.
type Config struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "text",
	}
}

// Validate checks the level and format names.
func (c Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Format)
	}
	return nil
}

// ParseLevel parses string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Build creates a logger writing to w according to cfg.
func Build(cfg Config, w io.Writer) Logger {
	level := ParseLevel(cfg.Level)
	switch strings.ToLower(cfg.Format) {
	case "json":
		return NewJSONLogger(w, level)
	default:
		return NewTextLogger(w, level)
	}
}

// Configure builds a logger from cfg and installs it as the default.
func Configure(cfg Config, w io.Writer) Logger {
	l := Build(cfg, w)
	SetDefault(l)
	return l
}
