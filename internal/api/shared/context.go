package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// ContextKey is the key type for context values set by this package.
type ContextKey string

// Context keys for various values
const (
	// UserIDContextKey is the context key for the authenticated user's ID
	UserIDContextKey ContextKey = "userID"

	// RoleContextKey is the context key for the authenticated user's role
	RoleContextKey ContextKey = "role"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID returns a new context carrying a freshly generated trace ID.
// If random generation fails the context is returned unchanged; requests
// are never rejected for lack of a trace ID.
func SetTraceID(ctx context.Context) context.Context {
	buf := make([]byte, TraceIDLength)
	if _, err := rand.Read(buf); err != nil {
		return ctx
	}
	return context.WithValue(ctx, TraceIDKey, hex.EncodeToString(buf))
}

// GetTraceID returns the trace ID stored in the context, or the empty
// string when none is present.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}
