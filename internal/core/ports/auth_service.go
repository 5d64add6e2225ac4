package ports

import (
	"context"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Session *domain.Session
	User    *domain.StaffAccount
}

type AddStaffInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, sess *domain.Session) (*domain.StaffAccount, error)
	ChangePassword(ctx context.Context, sess *domain.Session, currentPassword, newPassword string) error
	ListStaff(ctx context.Context) ([]domain.StaffAccount, error)
	AddStaff(ctx context.Context, in AddStaffInput) (int64, error)
	DeleteStaff(ctx context.Context, sess *domain.Session, targetID int64) error
}
