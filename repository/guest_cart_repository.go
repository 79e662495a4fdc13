package repository

import (
	"context"
	"database/sql"
	"fmt"

	"crag-outfitters/db"
)

// GuestCartRepository persists anonymous cart blobs in SQLite, one row
// per (visitor session, storage key). It stands in for the visitor's
// device storage: a durable string-keyed blob store where absence of a
// key is a valid, non-error state.
type GuestCartRepository struct{}

// NewGuestCartRepository creates a new GuestCartRepository
func NewGuestCartRepository() *GuestCartRepository {
	return &GuestCartRepository{}
}

// Ensure GuestCartRepository implements GuestCartRepositoryInterface
var _ GuestCartRepositoryInterface = (*GuestCartRepository)(nil)

// Get returns the blob stored under (scope, key). The second return is
// false when nothing is stored, which is not an error.
func (r *GuestCartRepository) Get(ctx context.Context, scope, key string) ([]byte, bool, error) {
	query := `SELECT payload FROM guest_carts WHERE session_id = ? AND storage_key = ?`

	var payload []byte
	err := db.GuestDB.QueryRowContext(ctx, query, scope, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read guest cart blob: %w", err)
	}
	return payload, true, nil
}

// Put stores the blob under (scope, key), replacing any previous value
func (r *GuestCartRepository) Put(ctx context.Context, scope, key string, value []byte) error {
	query := `
		INSERT INTO guest_carts (session_id, storage_key, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (session_id, storage_key)
		DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := db.GuestDB.ExecContext(ctx, query, scope, key, value); err != nil {
		return fmt.Errorf("failed to write guest cart blob: %w", err)
	}
	return nil
}

// Delete removes the blob under (scope, key). Deleting an absent key is
// a no-op.
func (r *GuestCartRepository) Delete(ctx context.Context, scope, key string) error {
	query := `DELETE FROM guest_carts WHERE session_id = ? AND storage_key = ?`
	if _, err := db.GuestDB.ExecContext(ctx, query, scope, key); err != nil {
		return fmt.Errorf("failed to delete guest cart blob: %w", err)
	}
	return nil
}
