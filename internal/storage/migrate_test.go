package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up must be idempotent: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	kv, err := NewSQLiteKV(db)
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	ctx := context.Background()
	if err := kv.Set(ctx, "roundtrip", `{"ok":true}`); err != nil {
		t.Fatalf("set after roundtrip failed: %v", err)
	}
	got, err := kv.Get(ctx, "roundtrip")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("unexpected value after roundtrip: %q", got)
	}
}
