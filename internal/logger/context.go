package logger

import (
	"context"

	"github.com/google/uuid"
)

// Unexported key types keep context values collision-free.
type requestIDKey struct{}
type loggerKey struct{}

// WithRequestID stores a request ID in the context, generating one when
// the caller has none.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the stored request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithLogger stores a specific logger in the context, overriding the
// process default for everything downstream.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the context's logger, falling back to Default.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return Default()
}

// contextFields collects the log fields carried by a context.
func contextFields(ctx context.Context) []Field {
	var fields []Field
	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, String("request_id", id))
	}
	return fields
}

// Ctx is the one-call form handlers use: the context's logger enriched
// with the context's fields.
func Ctx(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}
