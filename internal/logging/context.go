package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// CorrelationIDField is the log field carrying the per-request id
const CorrelationIDField = "correlation_id"

type correlationIDKey struct{}

// WithCorrelationID returns a context carrying the request's correlation id
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation id stored in ctx, if any
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// FromContext returns an entry of logger tagged with the request's
// correlation id
func FromContext(ctx context.Context, logger *logrus.Logger) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if id := CorrelationID(ctx); id != "" {
		entry = entry.WithField(CorrelationIDField, id)
	}
	return entry
}
