package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zaijudeng/toolstation/internal/apperror"
	"github.com/zaijudeng/toolstation/internal/password"
	"github.com/zaijudeng/toolstation/internal/plugins/auth"
	"github.com/zaijudeng/toolstation/internal/token"
)

// AdminService defines the business logic contract for the admin realm.
type AdminService interface {
	Login(ctx context.Context, username, plaintext string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (string, error)
	ListUsers(ctx context.Context) ([]auth.User, error)
	ResetCredit(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
}

// adminService implements AdminService.
type adminService struct {
	repo   AdminRepository
	secret []byte
	ttl    time.Duration
}

// NewAdminService creates a new admin service with the given dependencies.
func NewAdminService(repo AdminRepository, secret []byte, ttl time.Duration) AdminService {
	return &adminService{
		repo:   repo,
		secret: secret,
		ttl:    ttl,
	}
}

// Login authenticates an admin and returns a signed admin-realm session
// token. Unknown username and wrong password fail identically.
func (s *adminService) Login(ctx context.Context, username, plaintext string) (string, error) {
	admin, err := s.repo.FindAdminByUsername(ctx, username)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return "", apperror.NewUnauthorized("Invalid username or password.")
		}
		return "", apperror.NewInternal(fmt.Errorf("finding admin: %w", err))
	}

	if !password.Verify(plaintext, admin.PasswordHash) {
		return "", apperror.NewUnauthorized("Invalid username or password.")
	}

	tok, err := token.Issue(admin.ID, token.RealmAdmin, s.secret, s.ttl)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("admin logged in", slog.String("admin_id", admin.ID))

	return tok, nil
}

// ValidateToken verifies an admin-realm session token and returns the admin
// ID. User-realm tokens are rejected by the realm check even though both
// realms share one signing secret, and tokens for deleted admins are
// rejected by the existence check.
func (s *adminService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	adminID, err := token.Verify(tokenString, token.RealmAdmin, s.secret)
	if err != nil {
		return "", apperror.NewUnauthorized("Unauthorized: Invalid token")
	}

	if _, err := s.repo.FindAdminByID(ctx, adminID); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return "", apperror.NewUnauthorized("Unauthorized: Invalid token")
		}
		return "", apperror.NewInternal(fmt.Errorf("checking token subject: %w", err))
	}

	return adminID, nil
}

// ListUsers returns all users, newest registrations first.
func (s *adminService) ListUsers(ctx context.Context) ([]auth.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing users: %w", err))
	}
	return users, nil
}

// ResetCredit sets the user's call counter back to the default grant (10),
// regardless of its prior value.
func (s *adminService) ResetCredit(ctx context.Context, userID string) error {
	if err := s.repo.ResetCredit(ctx, userID, auth.DefaultAPICalls); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("resetting credit: %w", err))
	}

	slog.Info("credit reset", slog.String("user_id", userID))
	return nil
}

// DeleteUser hard-deletes a user. Irreversible; their outstanding session
// tokens die at next use because the auth middleware re-checks existence.
func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("deleting user: %w", err))
	}

	slog.Info("user deleted", slog.String("user_id", userID))
	return nil
}
