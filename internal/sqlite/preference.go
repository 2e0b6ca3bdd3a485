package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/repository"
)

// PreferenceRepository implements settings.PreferenceRepository on the local store.
type PreferenceRepository struct {
	db *DB
}

// NewPreferenceRepository creates a new preference repository.
func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the value stored under key, or repository.ErrNotFound.
func (r *PreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}
