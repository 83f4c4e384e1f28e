package common

import (
	"context"
)

// SessionInfo is the per-request snapshot of authentication state stashed in
// the request context by the route guard. Handlers read it instead of reaching
// back into the session store, so a single request sees one consistent view.
type SessionInfo struct {
	Token    string
	UserID   int
	Username string
	Email    string
}

// Authenticated reports whether the snapshot carries a token.
func (s *SessionInfo) Authenticated() bool {
	return s != nil && s.Token != ""
}

type contextKey int

const sessionContextKey contextKey = iota

// WithSessionInfo stores a SessionInfo in the request context.
func WithSessionInfo(ctx context.Context, si *SessionInfo) context.Context {
	return context.WithValue(ctx, sessionContextKey, si)
}

// SessionInfoFromContext retrieves the SessionInfo from context, or nil if absent.
func SessionInfoFromContext(ctx context.Context) *SessionInfo {
	si, _ := ctx.Value(sessionContextKey).(*SessionInfo)
	return si
}
