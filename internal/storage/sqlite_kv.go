package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteKV struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteKV(db *sql.DB) (*SQLiteKV, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteKV{db: db, now: time.Now}, nil
}

// OpenSQLite opens (creating if needed) the database file and applies the
// embedded migrations.
func OpenSQLite(path string) (*SQLiteKV, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	kv, err := NewSQLiteKV(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (s *SQLiteKV) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	return err
}

// UpdatedAt reports when key was last written.
func (s *SQLiteKV) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv_entries WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return time.Parse(sqliteTimeLayout, raw)
}

// ResetSchema drops every table through the down migrations and recreates
// them empty.
func (s *SQLiteKV) ResetSchema() error {
	if err := MigrateDown(s.db); err != nil {
		return err
	}
	return MigrateUp(s.db)
}

func ensureDir(path string) error {
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		return nil
	}
	clean := strings.Split(strings.TrimPrefix(path, "file:"), "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
