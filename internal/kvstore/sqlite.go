package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
)

// SQLiteStore persists key-value pairs in a local SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the backing database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrStorage, path, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: ping %s: %v", domain.ErrStorage, path, err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS farm_kv (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, key)
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("%w: create schema: %v", domain.ErrStorage, err)
	}
	return nil
}

// Get returns the value stored under (namespace, key), or ok=false when absent
func (s *SQLiteStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM farm_kv WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %s/%s: %v", domain.ErrStorage, namespace, key, err)
	}
	return value, true, nil
}

// Set stores value under (namespace, key), replacing any previous value
func (s *SQLiteStore) Set(ctx context.Context, namespace, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO farm_kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (namespace, key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("%w: set %s/%s: %v", domain.ErrStorage, namespace, key, err)
	}
	return nil
}

// Delete removes (namespace, key); deleting an absent key is not an error
func (s *SQLiteStore) Delete(ctx context.Context, namespace, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM farm_kv WHERE namespace = ? AND key = ?`,
		namespace, key,
	)
	if err != nil {
		return fmt.Errorf("%w: delete %s/%s: %v", domain.ErrStorage, namespace, key, err)
	}
	return nil
}

// Close closes the backing database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
