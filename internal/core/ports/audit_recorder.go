package ports

import (
	"context"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// AuditRecorder persists audit events. Callers treat failures as non-fatal.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}
