package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zaijudeng/toolstation/internal/apperror"
	"github.com/zaijudeng/toolstation/internal/password"
	"github.com/zaijudeng/toolstation/internal/token"
)

// AuthService defines the business logic contract for the user realm.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, email, plaintext string) (*User, error)
	Login(ctx context.Context, email, plaintext string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (string, error)
}

// authService implements AuthService with argon2id hashing and signed
// stateless session tokens.
type authService struct {
	repo   UserRepository
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, secret []byte, ttl time.Duration) AuthService {
	return &authService{
		repo:   repo,
		secret: secret,
		ttl:    ttl,
	}
}

// Register creates a new user account with the default call credit.
// The email is stored exactly as given (matching is case-sensitive) and
// input validation (password length) happens in the handler.
func (s *authService) Register(ctx context.Context, email, plaintext string) (*User, error) {
	// Check if email is already taken before doing expensive hashing.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("An account with this email already exists.")
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:                uuid.NewString(),
		Email:             email,
		PasswordHash:      hash,
		APICallsRemaining: DefaultAPICalls,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The unique key closes the race between EmailExists and Create.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates a user by email and password and returns a signed
// user-realm session token. Unknown email and wrong password fail with the
// same message so responses don't reveal which field was wrong.
func (s *authService) Login(ctx context.Context, email, plaintext string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return "", apperror.NewUnauthorized("Invalid email or password.")
		}
		return "", apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return "", apperror.NewUnauthorized("Invalid email or password.")
	}

	tok, err := token.Issue(user.ID, token.RealmUser, s.secret, s.ttl)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return tok, nil
}

// ValidateToken verifies a user-realm session token and returns the user ID.
// Signature validity alone is not enough: the subject must still exist, so
// stale tokens for deleted accounts die here even though they carry a valid
// signature. Admin-realm tokens are rejected by the realm check.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	userID, err := token.Verify(tokenString, token.RealmUser, s.secret)
	if err != nil {
		return "", apperror.NewUnauthorized("Unauthorized: Invalid token")
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return "", apperror.NewUnauthorized("Unauthorized: Invalid token")
		}
		return "", apperror.NewInternal(fmt.Errorf("checking token subject: %w", err))
	}

	return userID, nil
}
