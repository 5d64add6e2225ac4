package ports

import (
	"context"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// MenuRepository handles menu item persistence.
type MenuRepository interface {
	// List returns every item ordered by category, then name, using the
	// store's collation.
	List(ctx context.Context) ([]domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) (int64, error)
	// CreateBatch inserts all items in one transaction.
	CreateBatch(ctx context.Context, items []domain.MenuItem) error
	// Update replaces every mutable field and reports the rows affected.
	Update(ctx context.Context, item *domain.MenuItem) (int64, error)
	Delete(ctx context.Context, id int64) error
}
