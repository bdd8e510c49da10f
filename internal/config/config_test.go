package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.RecurrenceCheckInterval != time.Minute || cfg.ReminderBuffer != 64 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if filepath.Base(cfg.DBPath) != "focusboard.db" || cfg.DesktopNotifications {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
}

func TestLoadDerivesLogPath(t *testing.T) {
	t.Setenv("FOCUSBOARD_CONFIG", "")
	t.Setenv("FOCUSBOARD_DB_PATH", filepath.Join("data", "tasks.db"))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogPath != filepath.Join("data", "focusboard.log") {
		t.Fatalf("expected log next to db, got %q", cfg.LogPath)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("FOCUSBOARD_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("FOCUSBOARD_RECURRENCE_INTERVAL", "90s")
	t.Setenv("FOCUSBOARD_REMINDER_BUFFER", "128")
	t.Setenv("FOCUSBOARD_LOG_LEVEL", "debug")
	t.Setenv("FOCUSBOARD_LOG_PATH", "logs/fb.log")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
	if cfg.RecurrenceCheckInterval != 90*time.Second || cfg.ReminderBuffer != 128 {
		t.Fatalf("unexpected config overrides: %+v", cfg)
	}
	if cfg.Level() != log.DebugLevel || cfg.LogPath != "logs/fb.log" {
		t.Fatalf("unexpected logging overrides: %+v", cfg)
	}

	t.Setenv("FOCUSBOARD_RECURRENCE_INTERVAL", "30")
	t.Setenv("FOCUSBOARD_REMINDER_BUFFER", "-1")
	cfg = RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.RecurrenceCheckInterval != 30*time.Second || cfg.ReminderBuffer != 64 {
		t.Fatalf("expected bare seconds accepted and negative buffer ignored: %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "focusboard.yaml")
	body := "db_path: " + filepath.Join(dir, "board.db") + "\nrecurrence_interval: 2m\nreminder_buffer: 16\nlog_level: warn\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOCUSBOARD_REMINDER_BUFFER", "32")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "board.db") || cfg.RecurrenceCheckInterval != 2*time.Minute {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.ReminderBuffer != 32 {
		t.Fatalf("expected env to win over file, got %d", cfg.ReminderBuffer)
	}
	if cfg.Level() != log.WarnLevel {
		t.Fatalf("expected warn level, got %s", cfg.Level())
	}

	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(out), "recurrence_interval: 2m0s") {
		t.Fatalf("expected readable duration in yaml, got:\n%s", out)
	}
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("FOCUSBOARD_CONFIG", "")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
	t.Setenv("FOCUSBOARD_LOG_LEVEL", "loud")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
