// Package logger is the structured logging facade for the MoodLens
// backend. Handlers and services log through the Logger interface so the
// backend (currently slog) can be swapped without touching call sites.
package logger

import (
	"context"
	"strings"
	"time"
)

// Level is the minimum severity a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel reads a level name from configuration. Unknown names fall
// back to info rather than failing startup.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field is one key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Typed field constructors. Prefer these over Any so call sites read
// uniformly.

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Time(key string, value time.Time) Field { return Field{Key: key, Value: value} }

func Any(key string, value any) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err wraps an error under the conventional "error" key. A nil error
// logs as a null value instead of panicking.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Logger is implemented by logging backends.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger that attaches fields to every entry.
	With(fields ...Field) Logger
	// WithContext returns a child logger carrying context values such as
	// the request ID.
	WithContext(ctx context.Context) Logger

	Level() Level
}

// Config selects the backend behavior at startup.
type Config struct {
	Level Level
	// Format is "json" or "text".
	Format string
	// AddSource includes the caller's file:line in each entry.
	AddSource bool
}

// DefaultConfig is JSON at info level, the shape log collectors expect.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: "json",
	}
}

var defaultLogger Logger

// SetDefault installs the process-wide logger. Call once during startup,
// before any goroutines log.
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the process-wide logger, lazily creating one with
// DefaultConfig if SetDefault was never called.
func Default() Logger {
	if defaultLogger == nil {
		defaultLogger = NewSlogLogger(DefaultConfig())
	}
	return defaultLogger
}

// Package-level helpers that forward to the default logger.

func Debug(msg string, fields ...Field) { Default().Debug(msg, fields...) }

func Info(msg string, fields ...Field) { Default().Info(msg, fields...) }

func Warn(msg string, fields ...Field) { Default().Warn(msg, fields...) }

func Error(msg string, fields ...Field) { Default().Error(msg, fields...) }

func With(fields ...Field) Logger { return Default().With(fields...) }

func WithContext(ctx context.Context) Logger { return Default().WithContext(ctx) }
