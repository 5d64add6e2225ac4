package ports

import (
	"context"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// SessionStore owns server-side sessions keyed by an opaque token.
type SessionStore interface {
	Create(ctx context.Context, userID int64, role domain.Role, name string) (*domain.Session, error)
	// Get returns domain.ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Destroy is idempotent.
	Destroy(ctx context.Context, token string) error
}
