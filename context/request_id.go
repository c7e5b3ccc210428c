// Package context carries a per-query request id so tool executions and
// audit records can be correlated with the CLI turn that triggered them.
package context

import (
	stdctx "context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// NewRequestID generates a new unique request ID
func NewRequestID() string {
	return uuid.New().String()
}

// WithRequestID adds a request ID to the context
func WithRequestID(parent stdctx.Context, requestID string) stdctx.Context {
	return stdctx.WithValue(parent, requestIDKey{}, requestID)
}

// RequestIDFromContext extracts the request ID from the context
func RequestIDFromContext(ctx stdctx.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// EnsureRequestID returns the context unchanged when it already carries a
// request id, otherwise attaches a fresh one.
func EnsureRequestID(ctx stdctx.Context) (stdctx.Context, string) {
	if id := RequestIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := NewRequestID()
	return WithRequestID(ctx, id), id
}
