package chat

import (
	"context"
	"database/sql"
	"fmt"
)

// CreditRepository is the data access contract for call-credit accounting.
type CreditRepository interface {
	// DecrementCredit atomically spends one credit for the user. Returns
	// false if the user has no credit left (or no longer exists).
	DecrementCredit(ctx context.Context, userID string) (bool, error)
}

// creditRepository implements CreditRepository over MariaDB.
type creditRepository struct {
	db *sql.DB
}

// NewCreditRepository creates a credit repository backed by the given DB pool.
func NewCreditRepository(db *sql.DB) CreditRepository {
	return &creditRepository{db: db}
}

// DecrementCredit performs the check-and-decrement as a single conditional
// UPDATE. The database serializes concurrent requests for the same user:
// the counter can never go negative and a single remaining credit can never
// be spent twice, regardless of how many server instances are running.
// Rows-affected is the verdict -- zero means insufficient credit.
func (r *creditRepository) DecrementCredit(ctx context.Context, userID string) (bool, error) {
	query := `UPDATE users
	          SET api_calls_remaining = api_calls_remaining - 1
	          WHERE id = ? AND api_calls_remaining > 0`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("decrementing credit: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	return n == 1, nil
}
