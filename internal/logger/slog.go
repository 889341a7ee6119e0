package logger

import (
	"context"
	"log/slog"
	"os"
)

// slogBackend adapts log/slog to the Logger interface.
type slogBackend struct {
	sl    *slog.Logger
	level Level
}

// NewSlogLogger builds a Logger writing to stdout in the configured
// format.
func NewSlogLogger(cfg Config) Logger {
	opts := &slog.HandlerOptions{
		Level:     slogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &slogBackend{sl: slog.New(handler), level: cfg.Level}
}

func slogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// kvPairs flattens fields into the alternating key/value form slog's
// sugared methods take.
func kvPairs(fields []Field) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		pairs = append(pairs, f.Key, f.Value)
	}
	return pairs
}

func (b *slogBackend) Debug(msg string, fields ...Field) {
	b.sl.Debug(msg, kvPairs(fields)...)
}

func (b *slogBackend) Info(msg string, fields ...Field) {
	b.sl.Info(msg, kvPairs(fields)...)
}

func (b *slogBackend) Warn(msg string, fields ...Field) {
	b.sl.Warn(msg, kvPairs(fields)...)
}

func (b *slogBackend) Error(msg string, fields ...Field) {
	b.sl.Error(msg, kvPairs(fields)...)
}

func (b *slogBackend) With(fields ...Field) Logger {
	return &slogBackend{sl: b.sl.With(kvPairs(fields)...), level: b.level}
}

func (b *slogBackend) WithContext(ctx context.Context) Logger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return b
	}
	return b.With(fields...)
}

func (b *slogBackend) Level() Level {
	return b.level
}
