package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/taplejung/menu-system/internal/core/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: DriverSQLite, DSN: ":memory:"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	// Every pooled connection to :memory: opens its own database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func strPtr(s string) *string { return &s }

func TestStaffRepository_CreateAndFind(t *testing.T) {
	repo := NewStaffRepository(newTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.StaffAccount{
		Name: "Sita", Email: "sita@taplejung.com", PasswordHash: "$2a$hash", Role: domain.RoleManager,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected assigned id")
	}

	byEmail, err := repo.FindByEmail(ctx, "sita@taplejung.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if byEmail.ID != id || byEmail.Role != domain.RoleManager || byEmail.PasswordHash != "$2a$hash" {
		t.Fatalf("unexpected account: %+v", byEmail)
	}

	if _, err := repo.FindByEmail(ctx, "SITA@taplejung.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected case-sensitive lookup to miss, got %v", err)
	}
	if _, err := repo.FindByID(ctx, id+100); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStaffRepository_DuplicateEmail(t *testing.T) {
	repo := NewStaffRepository(newTestDB(t))
	ctx := context.Background()
	account := &domain.StaffAccount{Name: "Ram", Email: "ram@taplejung.com", PasswordHash: "h", Role: domain.RoleClerk}

	if _, err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := repo.Create(ctx, account); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestStaffRepository_RejectsUnknownRole(t *testing.T) {
	repo := NewStaffRepository(newTestDB(t))

	_, err := repo.Create(context.Background(), &domain.StaffAccount{
		Name: "Hari", Email: "hari@taplejung.com", PasswordHash: "h", Role: "owner",
	})
	if err == nil {
		t.Fatalf("expected check constraint to reject role")
	}
}

func TestStaffRepository_UpdateListDelete(t *testing.T) {
	repo := NewStaffRepository(newTestDB(t))
	ctx := context.Background()
	first, _ := repo.Create(ctx, &domain.StaffAccount{Name: "A", Email: "a@x.com", PasswordHash: "h1", Role: domain.RoleClerk})
	second, _ := repo.Create(ctx, &domain.StaffAccount{Name: "B", Email: "b@x.com", PasswordHash: "h2", Role: domain.RoleManager})

	if err := repo.UpdatePasswordHash(ctx, first, "h1-new"); err != nil {
		t.Fatalf("UpdatePasswordHash returned error: %v", err)
	}
	got, _ := repo.FindByID(ctx, first)
	if got.PasswordHash != "h1-new" {
		t.Fatalf("expected new hash, got %q", got.PasswordHash)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].ID != first || list[1].ID != second {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := repo.Delete(ctx, first); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(ctx, first); err != nil {
		t.Fatalf("expected repeated Delete to succeed, got %v", err)
	}
	if list, _ := repo.List(ctx); len(list) != 1 {
		t.Fatalf("expected 1 account left, got %d", len(list))
	}
}

func TestMenuRepository_ListOrdersByCategoryThenName(t *testing.T) {
	repo := NewMenuRepository(newTestDB(t))
	ctx := context.Background()
	for _, it := range []domain.MenuItem{
		{Name: "B", Category: "X", Price: 10},
		{Name: "C", Category: "Y", Price: 10},
		{Name: "A", Category: "X", Price: 10},
	} {
		it := it
		if _, err := repo.Create(ctx, &it); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := ""
	for _, it := range items {
		got += it.Category + it.Name + " "
	}
	if got != "XA XB YC " {
		t.Fatalf("unexpected order: %q", got)
	}
}

func TestMenuRepository_UpdateReplacesAllFields(t *testing.T) {
	repo := NewMenuRepository(newTestDB(t))
	ctx := context.Background()
	id, _ := repo.Create(ctx, &domain.MenuItem{
		Name: "Momo", Category: "Momo", Price: 300,
		Description: strPtr("steamed"), MeatType: strPtr("Buff"), SpiceLevel: strPtr("mild"),
	})

	n, err := repo.Update(ctx, &domain.MenuItem{ID: id, Name: "Jhol Momo", Category: "Momo", Price: 350})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row affected, got %d", n)
	}

	items, _ := repo.List(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Name != "Jhol Momo" || it.Price != 350 || it.Description != nil || it.MeatType != nil || it.SpiceLevel != nil {
		t.Fatalf("unexpected item after update: %+v", it)
	}

	n, err = repo.Update(ctx, &domain.MenuItem{ID: id + 50, Name: "Ghost", Category: "Momo", Price: 1})
	if err != nil || n != 0 {
		t.Fatalf("expected 0 rows and no error, got %d, %v", n, err)
	}
}

func TestMenuRepository_CreateBatchAndDelete(t *testing.T) {
	repo := NewMenuRepository(newTestDB(t))
	ctx := context.Background()

	err := repo.CreateBatch(ctx, []domain.MenuItem{
		{Name: "Lassi", Category: "Drinks", Price: 150},
		{Name: "Chiya", Category: "Drinks", Price: 50},
	})
	if err != nil {
		t.Fatalf("CreateBatch returned error: %v", err)
	}
	items, _ := repo.List(ctx)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if err := repo.Delete(ctx, items[0].ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(ctx, items[0].ID); err != nil {
		t.Fatalf("expected repeated Delete to succeed, got %v", err)
	}
	if items, _ := repo.List(ctx); len(items) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(items))
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	if _, err := Connect(Config{Driver: "oracle"}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
