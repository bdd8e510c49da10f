package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/focusboard/internal/board"
	"github.com/sandeepkv93/focusboard/internal/config"
	"github.com/sandeepkv93/focusboard/internal/recurrence"
	"github.com/sandeepkv93/focusboard/internal/scheduler"
	"github.com/sandeepkv93/focusboard/internal/storage"
	"github.com/sandeepkv93/focusboard/internal/update"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:           "focusboard",
		Short:         "Terminal task manager with focus timer, templates and recurring tasks",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $FOCUSBOARD_CONFIG)")

	rootCmd.AddCommand(addCmd(&configPath))
	rootCmd.AddCommand(listCmd(&configPath))
	rootCmd.AddCommand(statsCmd(&configPath))
	rootCmd.AddCommand(exportCmd(&configPath))
	rootCmd.AddCommand(importCmd(&configPath))
	rootCmd.AddCommand(clearCmd(&configPath))
	rootCmd.AddCommand(categoryCmd(&configPath))
	rootCmd.AddCommand(prefsCmd(&configPath))
	rootCmd.AddCommand(configCmd(&configPath))
	return rootCmd
}

// session is the opened store plus the logger every component shares.
type session struct {
	cfg     config.RuntimeConfig
	kv      *storage.SQLiteKV
	store   *storage.Store
	logger  *log.Logger
	closers []io.Closer
}

func openSession(configPath string, logTo io.Writer) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}
	if logTo == nil {
		f, err := openLogFile(cfg.LogPath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, f)
		logTo = f
	}
	s.logger = log.NewWithOptions(logTo, log.Options{
		ReportTimestamp: true,
		Level:           cfg.Level(),
	})

	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	s.kv = kv
	s.closers = append([]io.Closer{kv}, s.closers...)
	s.store = storage.NewStore(kv, s.logger)
	s.logger.Debug("store opened", "db", cfg.DBPath)
	return s, nil
}

func (s *session) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func runTUI(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, err := openSession(configPath, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	b := board.Load(ctx, s.store, s.logger)

	engine := scheduler.NewEngine(s.cfg.ReminderBuffer)
	engine.Start()
	defer engine.Stop()

	ticker, err := recurrence.NewTicker(s.cfg.RecurrenceCheckInterval, s.logger)
	if err != nil {
		return err
	}
	ticker.Start()
	defer ticker.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if s.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	s.logger.Info("starting", "version", Version, "tasks", len(b.Tasks()))
	program := tea.NewProgram(update.NewModel(update.Deps{
		Ctx:                  ctx,
		Board:                b,
		Scheduler:            engine,
		Ticker:               ticker,
		Notifier:             notifier,
		Logger:               s.logger,
		DesktopNotifications: s.cfg.DesktopNotifications,
	}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("focusboard failed: %w", err)
	}
	return nil
}
