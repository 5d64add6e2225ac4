package domain

import (
	"context"
	"time"
)

// Session is the server-side record behind a session cookie. UserID, Role
// and Name are copied at login and are not refreshed from the store, so a
// role change only takes effect after the next login.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsManager reports whether the session was opened by a manager.
func (s *Session) IsManager() bool {
	return s != nil && s.Role == RoleManager
}

type sessionKey struct{}

// ContextWithSession returns a copy of ctx carrying the acting session.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the acting session, or nil for anonymous calls.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
