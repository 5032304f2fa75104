package log

import (
	"io"
	"log/slog"
	"time"
)

// Logger is the logging interface used across QuantaSQL.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// logger wraps slog.Logger
type logger struct {
	slog *slog.Logger
}

// The library is silent unless a caller installs a logger.
var defaultLogger Logger = Discard()

// SetDefault sets the default logger
func SetDefault(l Logger) {
	if l == nil {
		l = Discard()
	}
	defaultLogger = l
}

// Default returns the default logger
func Default() Logger {
	return defaultLogger
}

// New creates a new logger with the given handler
func New(handler slog.Handler) Logger {
	return &logger{slog: slog.New(handler)}
}

// NewTextLogger creates a text logger writing to w.
func NewTextLogger(w io.Writer, level slog.Level) Logger {
	opts := &slog.HandlerOptions{Level: level}
	return &logger{slog: slog.New(slog.NewTextHandler(w, opts))}
}

// NewJSONLogger creates a JSON logger writing to w.
func NewJSONLogger(w io.Writer, level slog.Level) Logger {
	opts := &slog.HandlerOptions{Level: level}
	return &logger{slog: slog.New(slog.NewJSONHandler(w, opts))}
}

// Discard returns a logger that drops every record.
func Discard() Logger {
	return &logger{slog: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

func (l *logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

func (l *logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

func (l *logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

func (l *logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

func (l *logger) With(args ...any) Logger {
	return &logger{slog: l.slog.With(args...)}
}

// Reporter is the minimal diagnostics capability consumed by the parser.
type Reporter interface {
	Report(msg string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(msg string)

// Report calls f(msg).
func (f ReporterFunc) Report(msg string) { f(msg) }

// AsReporter adapts a Logger to Reporter; messages are logged at debug level.
func AsReporter(l Logger) Reporter {
	if l == nil {
		l = Default()
	}
	return ReporterFunc(func(msg string) { l.Debug(msg) })
}

// Helper functions for structured logging

// String returns a string attribute
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an int attribute
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

// Bool returns a bool attribute
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Duration returns a duration attribute
func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}

// Err returns the conventional "error" attribute.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

// Latency logs how long an operation took on l.
func Latency(l Logger, start time.Time, operation string) {
	l.Debug("operation completed",
		String("operation", operation),
		Duration("latency", time.Since(start)),
	)
}

// Package-level convenience functions

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}
