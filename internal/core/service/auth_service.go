package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taplejung/menu-system/internal/core/domain"
	"github.com/taplejung/menu-system/internal/core/ports"
	"github.com/taplejung/menu-system/internal/pkg/metrics"
)

const minPasswordLength = 6

// BootstrapAdmin controls the default manager account created on first run.
type BootstrapAdmin struct {
	Enabled        bool
	Name           string
	Email          string
	Password       string
	RandomPassword bool
}

// AuthService implements login, logout and staff account management.
type AuthService struct {
	staff    ports.StaffRepository
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAuthService(
	staff ports.StaffRepository,
	sessions ports.SessionStore,
	hasher ports.PasswordHasher,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		staff:    staff,
		sessions: sessions,
		hasher:   hasher,
		audit:    audit,
		log:      log,
	}
}

// Login checks the credentials and opens a session. An unknown email and a
// wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.BadRequest("Email and password required")
	}

	user, err := s.staff.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		s.loginFailed(ctx, email)
		return nil, domain.InvalidCredentials("Invalid credentials")
	}
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		s.loginFailed(ctx, email)
		return nil, domain.InvalidCredentials("Invalid credentials")
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Role, user.Name)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: create session: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action:    domain.AuditLogin,
		ActorID:   user.ID,
		ActorName: user.Name,
	})
	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("staff logged in")

	return &ports.LoginResult{Session: sess, User: user}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email string) {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action: domain.AuditLoginFailed,
		Detail: email,
	})
}

// Logout destroys the session behind token. An empty or already destroyed
// token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{Action: domain.AuditLogout})
	return nil
}

// CurrentUser re-reads the account behind sess. A session whose account has
// since been deleted is treated as unauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, sess *domain.Session) (*domain.StaffAccount, error) {
	if sess == nil {
		return nil, domain.Unauthorized("Not authenticated")
	}
	user, err := s.staff.FindByID(ctx, sess.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Unauthorized("Not authenticated")
	}
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password of the session's own account. Other
// sessions of that account stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, sess *domain.Session, currentPassword, newPassword string) error {
	if sess == nil {
		return domain.Unauthorized("Not authenticated")
	}
	if currentPassword == "" || newPassword == "" {
		return domain.BadRequest("Current and new password required")
	}
	if len(newPassword) < minPasswordLength {
		return domain.BadRequest("New password must be at least 6 characters")
	}

	user, err := s.staff.FindByID(ctx, sess.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Unauthorized("Not authenticated")
	}
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if !ok {
		return domain.InvalidCredentials("Current password is incorrect")
	}

	hash, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.staff.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	metrics.StaffMutationsTotal.WithLabelValues("change_password").Inc()
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action:   domain.AuditPasswordChange,
		TargetID: user.ID,
	})
	return nil
}

func (s *AuthService) ListStaff(ctx context.Context) ([]domain.StaffAccount, error) {
	accounts, err := s.staff.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return accounts, nil
}

// AddStaff creates a staff account. The caller's role is checked by the HTTP
// layer before this runs.
func (s *AuthService) AddStaff(ctx context.Context, in ports.AddStaffInput) (int64, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return 0, domain.BadRequest("All fields are required")
	}
	if !in.Role.Valid() {
		return 0, domain.BadRequest("Invalid role")
	}

	_, err := s.staff.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return 0, domain.Conflict("Email already exists")
	case !errors.Is(err, domain.ErrNotFound):
		return 0, fmt.Errorf("add staff: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return 0, fmt.Errorf("add staff: %w", err)
	}

	id, err := s.staff.Create(ctx, &domain.StaffAccount{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrConflict) {
		return 0, domain.Conflict("Email already exists")
	}
	if err != nil {
		return 0, fmt.Errorf("add staff: %w", err)
	}

	metrics.StaffMutationsTotal.WithLabelValues("add").Inc()
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action:   domain.AuditStaffAdd,
		TargetID: id,
		Detail:   string(in.Role),
	})
	return id, nil
}

// DeleteStaff removes the target account. A manager cannot remove the account
// behind their own session; a missing target is not an error.
func (s *AuthService) DeleteStaff(ctx context.Context, sess *domain.Session, targetID int64) error {
	if sess == nil {
		return domain.Unauthorized("Authentication required")
	}
	if targetID == sess.UserID {
		return domain.BadRequest("Cannot delete your own account")
	}
	if err := s.staff.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}

	metrics.StaffMutationsTotal.WithLabelValues("delete").Inc()
	recordAudit(ctx, s.audit, s.log, domain.AuditEvent{
		Action:   domain.AuditStaffDelete,
		TargetID: targetID,
	})
	return nil
}

// BootstrapDefaultAdmin creates the default manager account unless one with
// the bootstrap email already exists. The default password is public
// knowledge and must be rotated right after first login.
func (s *AuthService) BootstrapDefaultAdmin(ctx context.Context, cfg BootstrapAdmin) error {
	if !cfg.Enabled {
		return nil
	}

	_, err := s.staff.FindByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	password := cfg.Password
	generated := cfg.RandomPassword || password == ""
	if generated {
		password = rand.Text()
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Admin"
	}
	id, err := s.staff.Create(ctx, &domain.StaffAccount{
		Name:         name,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         domain.RoleManager,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	event := s.log.Warn().Int64("user_id", id).Str("email", cfg.Email)
	if generated {
		event = event.Str("password", password)
	}
	event.Msg("default manager account created, rotate its password immediately")
	return nil
}
