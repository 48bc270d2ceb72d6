package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zaijudeng/toolstation/internal/apperror"
	"github.com/zaijudeng/toolstation/internal/plugins/auth"
)

// AdminRepository defines the data access contract for the admin realm:
// admin credentials plus the user management operations.
type AdminRepository interface {
	FindAdminByUsername(ctx context.Context, username string) (*Admin, error)
	FindAdminByID(ctx context.Context, id string) (*Admin, error)
	CreateAdmin(ctx context.Context, admin *Admin) error

	ListUsers(ctx context.Context) ([]auth.User, error)
	ResetCredit(ctx context.Context, userID string, value int) error
	DeleteUser(ctx context.Context, userID string) error
}

// adminRepository implements AdminRepository with hand-written MariaDB queries.
type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new admin repository backed by the given DB pool.
func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{db: db}
}

// FindAdminByUsername retrieves an admin by username.
// Returns apperror.NotFound if no admin exists with this username.
func (r *adminRepository) FindAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	query := `SELECT id, username, password_hash, created_at
	          FROM admins WHERE username = ?`

	admin := &Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("admin not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin by username: %w", err)
	}

	return admin, nil
}

// FindAdminByID retrieves an admin by ID. Used by the session middleware so
// tokens for deleted admins stop working immediately.
func (r *adminRepository) FindAdminByID(ctx context.Context, id string) (*Admin, error) {
	query := `SELECT id, username, password_hash, created_at
	          FROM admins WHERE id = ?`

	admin := &Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("admin not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin by id: %w", err)
	}

	return admin, nil
}

// CreateAdmin inserts a new admin row. Only called by cmd/adminctl.
func (r *adminRepository) CreateAdmin(ctx context.Context, admin *Admin) error {
	query := `INSERT INTO admins (id, username, password_hash, created_at)
	          VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		admin.ID,
		admin.Username,
		admin.PasswordHash,
		admin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting admin: %w", err)
	}

	return nil
}

// --- User management ---

// ListUsers returns all users ordered by creation time, newest first.
// The password hash is deliberately excluded from the query -- the admin
// list view has no use for credential data.
func (r *adminRepository) ListUsers(ctx context.Context) ([]auth.User, error) {
	query := `SELECT id, email, api_calls_remaining, created_at
	          FROM users ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []auth.User
	for rows.Next() {
		var u auth.User
		if err := rows.Scan(&u.ID, &u.Email, &u.APICallsRemaining, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ResetCredit sets a user's call counter to the given value, replacing
// whatever it was before (not additive).
func (r *adminRepository) ResetCredit(ctx context.Context, userID string, value int) error {
	query := `UPDATE users SET api_calls_remaining = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, value, userID)
	if err != nil {
		return fmt.Errorf("resetting credit: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}

	return nil
}

// DeleteUser hard-deletes a user row. There is no soft delete or undo.
func (r *adminRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}

	return nil
}
