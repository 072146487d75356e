package middleware

import "context"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionIDFromContext returns the browser session id set by the Session
// middleware, empty when absent.
func SessionIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(sessionIDKey).(string); ok {
		return value
	}
	return ""
}

// WithSessionID stamps a session id onto the context. Exposed for tests and
// for the upstream token source wiring.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
