package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	namespace TEXT NOT NULL,
	key TEXT NOT NULL,
	value BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (namespace, key)
)`

// SQLiteStore is the production KeyValueStore, backed by a single sqlite
// database file on the device. Each instance is bound to one namespace.
type SQLiteStore struct {
	db        *sqlx.DB
	namespace string
}

// OpenSQLite opens (and creates if needed) the sqlite database at path and
// returns a store bound to the given namespace.
func OpenSQLite(path, namespace string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}
	// sqlite allows a single writer; avoid "database is locked" from pooling.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Exec(schema) > %w", err)
	}

	return &SQLiteStore{db: db, namespace: namespace}, nil
}

// WithNamespace returns a store sharing the same database under a different
// namespace.
func (s *SQLiteStore) WithNamespace(namespace string) *SQLiteStore {
	return &SQLiteStore{db: s.db, namespace: namespace}
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		s.namespace, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(kv) > %w", err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (namespace, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert kv) > %w", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM kv WHERE namespace = ? AND key = ?",
		s.namespace, key); err != nil {
		return fmt.Errorf("db.ExecContext(delete kv) > %w", err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys,
		"SELECT key FROM kv WHERE namespace = ? AND key LIKE ? ORDER BY key",
		s.namespace, prefix+"%"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(kv keys) > %w", err)
	}
	return keys, nil
}

var _ KeyValueStore = (*SQLiteStore)(nil)
