// Package config resolves runtime settings from defaults, an optional YAML
// file and FOCUSBOARD_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envConfigFile = "FOCUSBOARD_CONFIG"
	dbFileName    = "focusboard.db"
	logFileName   = "focusboard.log"
)

type RuntimeConfig struct {
	DBPath                  string        `mapstructure:"db_path"`
	LogPath                 string        `mapstructure:"log_path"`
	LogLevel                string        `mapstructure:"log_level"`
	RecurrenceCheckInterval time.Duration `mapstructure:"recurrence_interval"`
	ReminderBuffer          int           `mapstructure:"reminder_buffer"`
	DesktopNotifications    bool          `mapstructure:"desktop_notifications"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:                  filepath.Join(defaultDataDir(), dbFileName),
		LogLevel:                "info",
		RecurrenceCheckInterval: 60 * time.Second,
		ReminderBuffer:          64,
		DesktopNotifications:    false,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "focusboard")
	}
	return ".focusboard"
}

// Load resolves the effective configuration. An empty path falls back to
// $FOCUSBOARD_CONFIG; when neither is set no file is read. A named file that
// cannot be read is an error.
func Load(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if path == "" {
		path = strings.TrimSpace(os.Getenv(envConfigFile))
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return RuntimeConfig{}, err
		}
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(filepath.Dir(cfg.DBPath), logFileName)
	}
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// LoadFile overlays the keys present in a YAML file onto cfg.
func LoadFile(path string, cfg *RuntimeConfig) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("FOCUSBOARD_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("FOCUSBOARD_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("FOCUSBOARD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvDuration("FOCUSBOARD_RECURRENCE_INTERVAL"); ok && v > 0 {
		cfg.RecurrenceCheckInterval = v
	}
	if v, ok := getEnvInt("FOCUSBOARD_REMINDER_BUFFER"); ok && v > 0 {
		cfg.ReminderBuffer = v
	}
	if v, ok := getEnvBool("FOCUSBOARD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if c.RecurrenceCheckInterval < time.Second {
		return fmt.Errorf("config: recurrence_interval must be at least 1s, got %s", c.RecurrenceCheckInterval)
	}
	if c.ReminderBuffer <= 0 {
		return fmt.Errorf("config: reminder_buffer must be positive, got %d", c.ReminderBuffer)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c RuntimeConfig) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// YAML renders the configuration with durations in their string form.
func (c RuntimeConfig) YAML() ([]byte, error) {
	out, err := yaml.Marshal(struct {
		DBPath               string `yaml:"db_path"`
		LogPath              string `yaml:"log_path"`
		LogLevel             string `yaml:"log_level"`
		RecurrenceInterval   string `yaml:"recurrence_interval"`
		ReminderBuffer       int    `yaml:"reminder_buffer"`
		DesktopNotifications bool   `yaml:"desktop_notifications"`
	}{
		DBPath:               c.DBPath,
		LogPath:              c.LogPath,
		LogLevel:             c.LogLevel,
		RecurrenceInterval:   c.RecurrenceCheckInterval.String(),
		ReminderBuffer:       c.ReminderBuffer,
		DesktopNotifications: c.DesktopNotifications,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// getEnvDuration accepts Go duration strings or a bare number of seconds.
func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return d, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
