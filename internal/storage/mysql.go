package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// MySQLStore implements Store on a shared MySQL server, for shops that
// already run one for other software. The *sql.DB is injected so the
// caller owns pooling and lifetime.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates the collections table if needed.
func NewMySQLStore(db *sql.DB) (*MySQLStore, error) {
	query := `
	CREATE TABLE IF NOT EXISTS collections (
		` + "`key`" + ` VARCHAR(64) PRIMARY KEY,
		value MEDIUMTEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[MySQLStore] Initialized")
	return &MySQLStore{db: db}, nil
}

// Read returns the stored value for the key, or ErrNotFound.
func (s *MySQLStore) Read(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM collections WHERE `key` = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

// Write inserts or replaces the value for the key.
func (s *MySQLStore) Write(ctx context.Context, key string, value []byte) error {
	query := "INSERT INTO collections (`key`, value, updated_at) VALUES (?, ?, NOW()) " +
		"ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = NOW()"

	if _, err := s.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the value for the key if present.
func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM collections WHERE `key` = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// Ensure MySQLStore implements Store
var _ Store = (*MySQLStore)(nil)
