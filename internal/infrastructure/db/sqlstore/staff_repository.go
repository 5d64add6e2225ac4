package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
)

type staffRow struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"not null;check:role = 'clerk' OR role = 'manager'"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (staffRow) TableName() string { return "staff" }

func (r *staffRow) toDomain() *domain.StaffAccount {
	return &domain.StaffAccount{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

// StaffRepository implements ports.StaffRepository with gorm.
type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) ports.StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	var row staffRow
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find staff by email: %w", err)
	}
	return row.toDomain(), nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id int64) (*domain.StaffAccount, error) {
	var row staffRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find staff by id: %w", err)
	}
	return row.toDomain(), nil
}

// List returns every account ordered by id.
func (r *StaffRepository) List(ctx context.Context) ([]domain.StaffAccount, error) {
	var rows []staffRow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	out := make([]domain.StaffAccount, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toDomain())
	}
	return out, nil
}

func (r *StaffRepository) Create(ctx context.Context, account *domain.StaffAccount) (int64, error) {
	row := staffRow{
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Role:         string(account.Role),
		CreatedAt:    account.CreatedAt,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, fmt.Errorf("create staff %s: %w", account.Email, domain.ErrConflict)
	}
	if err != nil {
		return 0, fmt.Errorf("create staff: %w", err)
	}
	return row.ID, nil
}

func (r *StaffRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	err := r.db.WithContext(ctx).
		Model(&staffRow{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&staffRow{}, id).Error; err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}
