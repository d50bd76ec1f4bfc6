package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetCredential returns the value stored under name and whether it exists.
func (db *DB) GetCredential(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, "SELECT value FROM credentials WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get credential %s: %w", name, err)
	}
	return value, true, nil
}

// SetCredential stores value under name (upsert).
func (db *DB) SetCredential(ctx context.Context, name, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO credentials (name, value)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to set credential %s: %w", name, err)
	}
	return nil
}

// RemoveCredential deletes name. Removing an absent credential is not an error.
func (db *DB) RemoveCredential(ctx context.Context, name string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM credentials WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to remove credential %s: %w", name, err)
	}
	return nil
}
