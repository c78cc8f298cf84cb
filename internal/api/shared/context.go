package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the key type for request-scoped context values.
type ContextKey string

// Context keys for various values.
const (
	// UsernameContextKey is the context key for the authenticated principal's
	// username, set by the auth middleware from a validated token.
	UsernameContextKey ContextKey = "username"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context, used to correlate logs and
// error responses for one request.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetUsername adds the authenticated username to the context.
func SetUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameContextKey, username)
}

// GetUsername retrieves the authenticated username from the context.
// Returns the username and whether it was present.
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameContextKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
