// ABOUTME: SQLite-backed store for node persistence using modernc.org/sqlite
// ABOUTME: Opens the database, applies schemas idempotently, and bounds the connection pool

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// PoolConfig bounds concurrent backend access. Zero values fall back to the
// defaults the node has always used (10 connections, 30s busy timeout).
type PoolConfig struct {
	MaxConns    int
	BusyTimeout time.Duration
}

const (
	defaultMaxConns    = 10
	defaultBusyTimeout = 30 * time.Second
)

// SQLiteStore owns the five record kinds (mnemonic, channel peers,
// rgb_config, channel-id mappings, revoked tokens) plus the write-through
// config cache. All methods are safe for concurrent use.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	cache  *configCache

	// The mnemonic path predates the pooled store and only ever ran one
	// statement at a time; the mutex preserves that single-writer contract.
	seedMu sync.Mutex
}

// NewSQLiteStore opens (creating if absent) the database at path and applies
// all table schemas. Parent directories are created if needed. A failure
// here is fatal at startup: the node has no degraded mode without its store.
func NewSQLiteStore(path string, pool PoolConfig) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	if pool.MaxConns <= 0 {
		pool.MaxConns = defaultMaxConns
	}
	if pool.BusyTimeout <= 0 {
		pool.BusyTimeout = defaultBusyTimeout
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(pool.MaxConns)

	// WAL for concurrent readers; busy_timeout so writers queue instead of
	// failing immediately when the file is locked.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", pool.BusyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
		cache:  newConfigCache(),
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path, "max_conns", pool.MaxConns)
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// Existing tables are never destructively altered.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS mnemonic (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			encrypted_mnemonic TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS channel_peer (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			public_key TEXT NOT NULL UNIQUE,
			socket_addr TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rgb_config (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS channel_ids (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			temporary_channel_id TEXT NOT NULL UNIQUE,
			channel_id TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_channel_ids_channel_id
			ON channel_ids(channel_id);

		CREATE TABLE IF NOT EXISTS revoked_token (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			revocation_id TEXT NOT NULL UNIQUE
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// isConstraintViolation checks if the error is a SQLite UNIQUE constraint violation.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

// CacheHits reports how many config reads were served from the cache.
// Exposed for test instrumentation.
func (s *SQLiteStore) CacheHits() uint64 {
	return s.cache.hits()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}
