package ports

import (
	"context"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// MenuItemInput carries the mutable fields of a menu item as received.
// Price is a pointer so that an omitted price can be told apart.
type MenuItemInput struct {
	Name        string
	Category    string
	Price       *int64
	Description *string
	MeatType    *string
	SpiceLevel  *string
}

type MenuService interface {
	ListMenu(ctx context.Context) (domain.Menu, error)
	AddMenuItem(ctx context.Context, in MenuItemInput) (int64, error)
	UpdateMenuItem(ctx context.Context, id int64, in MenuItemInput) error
	DeleteMenuItem(ctx context.Context, id int64) error
	ImportMenuItems(ctx context.Context, items []MenuItemInput) (int, error)
}
