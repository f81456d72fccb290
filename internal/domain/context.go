package domain

import "context"

// contextKey is a type for context keys to avoid collisions
type contextKey string

const sessionIdentityKey contextKey = "session_identity"

// WithSessionIdentity returns a context carrying the resolved session
// identity for downstream handlers.
func WithSessionIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, sessionIdentityKey, identity)
}

// GetSessionIdentityFromContext returns the session identity stored by the
// resolver middleware, or "" if the request carried none.
func GetSessionIdentityFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIdentityKey).(string); ok {
		return v
	}
	return ""
}
