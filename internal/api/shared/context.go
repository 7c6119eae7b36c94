package shared

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// traceIDKey is the context key under which the request trace ID lives.
const traceIDKey contextKey = "traceID"

// SetTraceID stores a fresh trace ID in the context so logs and error
// responses for one request can be correlated.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, uuid.New().String())
}

// GetTraceID returns the trace ID from the context, or an empty string
// when the request carries none.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
