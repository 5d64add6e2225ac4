package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/api/middleware"
	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn         func(ctx context.Context, token string) error
	currentUserFn    func(ctx context.Context, sess *domain.Session) (*domain.StaffAccount, error)
	changePasswordFn func(ctx context.Context, sess *domain.Session, cur, next string) error
	listStaffFn      func(ctx context.Context) ([]domain.StaffAccount, error)
	addStaffFn       func(ctx context.Context, in ports.AddStaffInput) (int64, error)
	deleteStaffFn    func(ctx context.Context, sess *domain.Session, id int64) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, sess *domain.Session) (*domain.StaffAccount, error) {
	return s.currentUserFn(ctx, sess)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, sess *domain.Session, cur, next string) error {
	return s.changePasswordFn(ctx, sess, cur, next)
}

func (s *stubAuthService) ListStaff(ctx context.Context) ([]domain.StaffAccount, error) {
	return s.listStaffFn(ctx)
}

func (s *stubAuthService) AddStaff(ctx context.Context, in ports.AddStaffInput) (int64, error) {
	return s.addStaffFn(ctx, in)
}

func (s *stubAuthService) DeleteStaff(ctx context.Context, sess *domain.Session, id int64) error {
	return s.deleteStaffFn(ctx, sess, id)
}

type stubMenuService struct {
	listFn   func(ctx context.Context) (domain.Menu, error)
	addFn    func(ctx context.Context, in ports.MenuItemInput) (int64, error)
	updateFn func(ctx context.Context, id int64, in ports.MenuItemInput) error
	deleteFn func(ctx context.Context, id int64) error
	importFn func(ctx context.Context, items []ports.MenuItemInput) (int, error)
}

func (s *stubMenuService) ListMenu(ctx context.Context) (domain.Menu, error) {
	return s.listFn(ctx)
}

func (s *stubMenuService) AddMenuItem(ctx context.Context, in ports.MenuItemInput) (int64, error) {
	return s.addFn(ctx, in)
}

func (s *stubMenuService) UpdateMenuItem(ctx context.Context, id int64, in ports.MenuItemInput) error {
	return s.updateFn(ctx, id, in)
}

func (s *stubMenuService) DeleteMenuItem(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubMenuService) ImportMenuItems(ctx context.Context, items []ports.MenuItemInput) (int, error) {
	return s.importFn(ctx, items)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func testCookie() *middleware.SessionCookie {
	return middleware.NewSessionCookie(middleware.CookieConfig{
		Name:   "sid",
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		TTL:    time.Hour,
	})
}

func withSession(c echo.Context, sess *domain.Session) {
	c.Set(middleware.ContextKeySession, sess)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

var nop = zerolog.Nop()

