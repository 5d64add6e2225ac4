package ports

import (
	"context"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// StaffRepository defines the interface for staff account persistence.
// Lookups return domain.ErrNotFound when no row matches.
type StaffRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
	FindByID(ctx context.Context, id int64) (*domain.StaffAccount, error)
	List(ctx context.Context) ([]domain.StaffAccount, error)
	// Create inserts the account and returns its new id. A duplicate email
	// yields an error wrapping domain.ErrConflict.
	Create(ctx context.Context, account *domain.StaffAccount) (int64, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	// Delete removes the account. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}
