// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/brgrr/internal/storage"
)

// Ensure SQLiteStore implements storage.Store and storage.Toucher
var (
	_ storage.Store   = (*SQLiteStore)(nil)
	_ storage.Toucher = (*SQLiteStore)(nil)
)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Writers serialize on one connection; SQLite would otherwise return SQLITE_BUSY
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get retrieves the value stored under key in namespace.
func (s *SQLiteStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		namespace, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

// Set upserts the value stored under key in namespace.
func (s *SQLiteStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", namespace, key, err)
	}
	return nil
}

// DeleteNamespace removes every key in namespace.
func (s *SQLiteStore) DeleteNamespace(ctx context.Context, namespace string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE namespace = ?", namespace)
	if err != nil {
		return fmt.Errorf("failed to delete namespace %s: %w", namespace, err)
	}
	return nil
}

// Touch moves the updated_at of every key in namespace forward to at, so
// PurgeStale treats the namespace as active. It never moves it back.
func (s *SQLiteStore) Touch(ctx context.Context, namespace string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE kv SET updated_at = ? WHERE namespace = ? AND updated_at < ?",
		at.Unix(), namespace, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to touch namespace %s: %w", namespace, err)
	}
	return nil
}

// PurgeStale removes namespaces with the given prefix whose newest key is
// older than cutoff. It returns the number of rows removed. Used to drop
// session data left behind by tabs that never ended their session.
func (s *SQLiteStore) PurgeStale(ctx context.Context, prefix string, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE namespace IN (
			SELECT namespace FROM kv WHERE namespace LIKE ? || '%'
			GROUP BY namespace HAVING MAX(updated_at) < ?
		)`,
		prefix, cutoff.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale namespaces: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	return n, nil
}
