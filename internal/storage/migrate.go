package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every up migration in name order. Migrations use
// IF NOT EXISTS so reapplying them on an existing file is harmless.
func MigrateUp(db *sql.DB) error {
	names, err := migrationNames(".up.sql")
	if err != nil {
		return err
	}
	return applyMigrations(db, names)
}

// MigrateDown applies the down migrations newest first.
func MigrateDown(db *sql.DB) error {
	names, err := migrationNames(".down.sql")
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return applyMigrations(db, names)
}

func migrationNames(suffix string) ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

func applyMigrations(db *sql.DB, names []string) error {
	for _, name := range names {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, execErr := tx.Exec(string(sqlBytes)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}
