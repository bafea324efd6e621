package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type sqliteConfig struct {
	busyTimeout int
	table       string
}

// SQLiteOption customises OpenSQLite.
type SQLiteOption func(*sqliteConfig)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 5000.
func WithBusyTimeout(ms int) SQLiteOption { return func(c *sqliteConfig) { c.busyTimeout = ms } }

// WithTable sets the key/value table name. Default: "kv".
func WithTable(name string) SQLiteOption { return func(c *sqliteConfig) { c.table = name } }

// SQLite stores values in a two-column table of a SQLite database.
type SQLite struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens or creates the database at path. ":memory:" keeps it in
// process.
func OpenSQLite(path string, opts ...SQLiteOption) (*SQLite, error) {
	cfg := sqliteConfig{busyTimeout: 5000, table: "kv"}
	for _, o := range opts {
		o(&cfg)
	}
	if !validKey(cfg.table) {
		return nil, fmt.Errorf("storage: invalid table name %q", cfg.table)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	// One connection: an in-memory database is private to its connection,
	// and a single writer needs no more.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(fmt.Sprintf(`
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = %d;
		PRAGMA synchronous = NORMAL;
	`, cfg.busyTimeout)); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: configure database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + cfg.table + ` (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create table: %w", err)
	}

	return &SQLite{db: db, table: cfg.table}, nil
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM `+s.table+` WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Put(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.Exec(`INSERT INTO `+s.table+` (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value)
	if err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
