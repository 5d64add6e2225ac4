package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
)

const importBatchSize = 100

type menuItemRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Category    string `gorm:"not null;index"`
	Price       int64  `gorm:"not null"`
	Description *string
	MeatType    *string `gorm:"column:meat_type"`
	SpiceLevel  *string `gorm:"column:spice_level"`
}

func (menuItemRow) TableName() string { return "menu_items" }

func newMenuItemRow(item *domain.MenuItem) menuItemRow {
	return menuItemRow{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		Price:       item.Price,
		Description: item.Description,
		MeatType:    item.MeatType,
		SpiceLevel:  item.SpiceLevel,
	}
}

func (r menuItemRow) toDomain() domain.MenuItem {
	return domain.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Description: r.Description,
		MeatType:    r.MeatType,
		SpiceLevel:  r.SpiceLevel,
	}
}

// MenuRepository implements ports.MenuRepository with gorm.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) ports.MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	var rows []menuItemRow
	if err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	out := make([]domain.MenuItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) (int64, error) {
	row := newMenuItemRow(item)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("create menu item: %w", err)
	}
	return row.ID, nil
}

func (r *MenuRepository) CreateBatch(ctx context.Context, items []domain.MenuItem) error {
	rows := make([]menuItemRow, 0, len(items))
	for i := range items {
		row := newMenuItemRow(&items[i])
		row.ID = 0
		rows = append(rows, row)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&rows, importBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("create menu items: %w", err)
	}
	return nil
}

// Update writes every mutable column, nulling optional ones that are unset.
func (r *MenuRepository) Update(ctx context.Context, item *domain.MenuItem) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&menuItemRow{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"category":    item.Category,
			"price":       item.Price,
			"description": item.Description,
			"meat_type":   item.MeatType,
			"spice_level": item.SpiceLevel,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update menu item: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MenuRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&menuItemRow{}, id).Error; err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}
