package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
	"github.com/taplejung/menu-system/internal/pkg/metrics"
)

type MenuService struct {
	repo  ports.MenuRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewMenuService(repo ports.MenuRepository, audit ports.AuditRecorder, log zerolog.Logger) *MenuService {
	return &MenuService{repo: repo, audit: audit, log: log}
}

// ListMenu returns all items grouped by category. Both the category order and
// the item order within a category are the store's, so they follow its
// collation.
func (s *MenuService) ListMenu(ctx context.Context) (domain.Menu, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}

	menu := domain.Menu{}
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(menu)
			index[item.Category] = i
			menu = append(menu, domain.CategoryGroup{Category: item.Category})
		}
		menu[i].Items = append(menu[i].Items, item)
	}
	return menu, nil
}

func (s *MenuService) AddMenuItem(ctx context.Context, in ports.MenuItemInput) (int64, error) {
	item, err := menuItemFromInput(in)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return 0, fmt.Errorf("add menu item: %w", err)
	}

	metrics.MenuMutationsTotal.WithLabelValues("add").Inc()
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action:   domain.AuditMenuAdd,
		TargetID: id,
		Detail:   item.Name,
	})
	return id, nil
}

// UpdateMenuItem replaces every mutable field of item id. Updating an id that
// does not exist succeeds without effect.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id int64, in ports.MenuItemInput) error {
	item, err := menuItemFromInput(in)
	if err != nil {
		return err
	}
	item.ID = id

	affected, err := s.repo.Update(ctx, item)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if affected == 0 {
		s.log.Debug().Int64("id", id).Msg("update matched no menu item")
	}

	metrics.MenuMutationsTotal.WithLabelValues("update").Inc()
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action:   domain.AuditMenuUpdate,
		TargetID: id,
		Detail:   item.Name,
	})
	return nil
}

// DeleteMenuItem removes item id. Deleting a missing id is a no-op.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	metrics.MenuMutationsTotal.WithLabelValues("delete").Inc()
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action:   domain.AuditMenuDelete,
		TargetID: id,
	})
	return nil
}

// ImportMenuItems validates every input before inserting any. One bad row
// rejects the whole batch.
func (s *MenuService) ImportMenuItems(ctx context.Context, inputs []ports.MenuItemInput) (int, error) {
	if len(inputs) == 0 {
		return 0, domain.BadRequest("No menu items to import")
	}

	items := make([]domain.MenuItem, 0, len(inputs))
	for i, in := range inputs {
		item, err := menuItemFromInput(in)
		if err != nil {
			return 0, domain.BadRequest("Item " + strconv.Itoa(i+1) + ": " + err.Error())
		}
		items = append(items, *item)
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("import menu items: %w", err)
	}

	metrics.MenuMutationsTotal.WithLabelValues("import").Add(float64(len(items)))
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action: domain.AuditMenuImport,
		Detail: strconv.Itoa(len(items)) + " items",
	})
	return len(items), nil
}

// menuItemFromInput applies the required-field rule shared by add and update.
// A zero price counts as missing.
func menuItemFromInput(in ports.MenuItemInput) (*domain.MenuItem, error) {
	if in.Name == "" || in.Category == "" || in.Price == nil || *in.Price == 0 {
		return nil, domain.BadRequest("Name, category, and price are required")
	}
	if *in.Price < 0 {
		return nil, domain.BadRequest("Price must not be negative")
	}
	return &domain.MenuItem{
		Name:        in.Name,
		Category:    in.Category,
		Price:       *in.Price,
		Description: in.Description,
		MeatType:    in.MeatType,
		SpiceLevel:  in.SpiceLevel,
	}, nil
}
