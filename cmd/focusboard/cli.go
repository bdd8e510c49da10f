package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandeepkv93/focusboard/internal/board"
	"github.com/sandeepkv93/focusboard/internal/config"
	"github.com/sandeepkv93/focusboard/internal/filter"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/storage"
	"github.com/spf13/cobra"
)

const dueLayout = "2006-01-02"

// withSession opens the store with logs on stderr and hands the session and
// a loaded board to fn.
func withSession(cmd *cobra.Command, configPath string, fn func(ctx context.Context, s *session, b *board.Board) error) error {
	s, err := openSession(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, s, board.Load(ctx, s.store, s.logger))
}

func withBoard(cmd *cobra.Command, configPath string, fn func(ctx context.Context, b *board.Board) error) error {
	return withSession(cmd, configPath, func(ctx context.Context, _ *session, b *board.Board) error {
		return fn(ctx, b)
	})
}

func addCmd(configPath *string) *cobra.Command {
	var (
		priority string
		category string
		due      string
		tags     []string
		estimate int
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := model.Task{
				Title:    strings.Join(args, " "),
				Category: category,
				Tags:     tags,
			}
			if priority != "" {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				draft.Priority = p
			}
			if due != "" {
				d, err := time.ParseInLocation(dueLayout, due, time.Local)
				if err != nil {
					return fmt.Errorf("--due must be %s: %w", dueLayout, err)
				}
				draft.DueDate = &d
			}
			if estimate > 0 {
				draft.Estimate = model.Minutes(estimate)
			}
			return withBoard(cmd, *configPath, func(ctx context.Context, b *board.Board) error {
				if draft.Category == "" {
					draft.Category = b.Preferences().DefaultCategory
				}
				t, err := b.AddTask(ctx, draft)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", t.ID, t.Title)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id (default from preferences)")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date "+dueLayout)
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "estimated minutes")
	return cmd
}

func listCmd(configPath *string) *cobra.Command {
	var (
		filterType    string
		sortBy        string
		order         string
		search        string
		category      string
		priority      string
		hideCompleted bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks through the same filter and sort as the board view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, *configPath, func(ctx context.Context, b *board.Board) error {
				c := filter.CriteriaFromPreferences(b.Preferences())
				c.Search = search
				c.Category = category
				if filterType != "" {
					f, err := model.ParseFilterType(filterType)
					if err != nil {
						return err
					}
					c.Type = f
				}
				if sortBy != "" {
					s, err := model.ParseSortType(sortBy)
					if err != nil {
						return err
					}
					c.Sort = s
				}
				if order != "" {
					o, err := model.ParseSortOrder(order)
					if err != nil {
						return err
					}
					c.Order = o
				}
				if priority != "" {
					p, err := model.ParsePriority(priority)
					if err != nil {
						return err
					}
					c.Priority = p
				}
				renderTaskTable(cmd.OutOrStdout(), b, b.Visible(c, !hideCompleted))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filterType, "filter", "f", "", "all, active, completed or overdue")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "dueDate, priority, created or title")
	cmd.Flags().StringVarP(&order, "order", "o", "", "asc or desc")
	cmd.Flags().StringVarP(&search, "search", "q", "", "case-insensitive text search")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "omit completed tasks")
	return cmd
}

func renderTaskTable(w io.Writer, b *board.Board, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	now := b.Now()
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.In(time.Local).Format("2006-01-02 15:04")
			if t.IsOverdue(now) {
				due += " (overdue)"
			}
		}
		rows = append(rows, []string{done, t.Title, string(t.Priority), b.CategoryByID(t.Category).Name, due, strings.Join(t.Tags, ",")})
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "TITLE", "PRIORITY", "CATEGORY", "DUE", "TAGS").
		Rows(rows...)
	fmt.Fprintln(w, tbl.String())
}

func statsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, *configPath, func(ctx context.Context, sess *session, b *board.Board) error {
				s := b.Stats()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "total:      %d\n", s.Total)
				fmt.Fprintf(out, "active:     %d\n", s.Active)
				fmt.Fprintf(out, "completed:  %d (%d%%)\n", s.Completed, s.CompletionRate)
				fmt.Fprintf(out, "due today:  %d\n", s.DueToday)
				fmt.Fprintf(out, "overdue:    %d\n", s.Overdue)
				saved, err := sess.kv.UpdatedAt(ctx, storage.KeyTasks)
				switch {
				case errors.Is(err, storage.ErrNotFound):
					fmt.Fprintln(out, "last saved: never")
				case err != nil:
					return err
				default:
					fmt.Fprintf(out, "last saved: %s\n", saved.In(time.Local).Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}

func exportCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks, categories, templates and preferences as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, *configPath, func(ctx context.Context, b *board.Board) error {
				payload, err := b.Store().Export(ctx, b.Now())
				if err != nil {
					return err
				}
				if out == "" || out == "-" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
					return err
				}
				return os.WriteFile(out, append(payload, '\n'), 0o644)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func importCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import an export document; keys absent from the file are left alone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return withBoard(cmd, *configPath, func(ctx context.Context, b *board.Board) error {
				if err := b.Store().Import(ctx, raw); err != nil {
					return err
				}
				b.Reload(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks\n", len(b.Tasks()))
				return nil
			})
		},
	}
}

func clearCmd(configPath *string) *cobra.Command {
	var yes, resetSchema bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			return withSession(cmd, *configPath, func(ctx context.Context, s *session, b *board.Board) error {
				if resetSchema {
					if err := s.kv.ResetSchema(); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "database schema recreated")
					return nil
				}
				b.Store().ClearAll(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	cmd.Flags().BoolVar(&resetSchema, "reset-schema", false, "drop and recreate the database tables, removing unknown keys too")
	return cmd
}

func configCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect runtime configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return cmd
}

func categoryCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "List or add task categories",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, *configPath, func(ctx context.Context, b *board.Board) error {
				rows := make([][]string, 0)
				for _, c := range b.Categories() {
					rows = append(rows, []string{c.ID, c.Icon, c.Name, c.Color})
				}
				tbl := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("ID", "", "NAME", "COLOR").
					Rows(rows...)
				fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
				return nil
			})
		},
	})

	var color, icon string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, *configPath, func(ctx context.Context, b *board.Board) error {
				c, err := b.AddCategory(ctx, strings.Join(args, " "), color, icon)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added category %s (%s)\n", c.Name, c.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&color, "color", "", "hex color such as #a855f7")
	add.Flags().StringVar(&icon, "icon", "", "icon glyph")
	cmd.AddCommand(add)
	return cmd
}

func prefsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or edit user preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, *configPath, func(ctx context.Context, b *board.Board) error {
				prefs := b.Preferences()
				for _, key := range model.PreferenceKeys {
					value, err := prefs.Get(key)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", key, value)
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one preference, e.g. `prefs set pomodoroLength 50`",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, *configPath, func(ctx context.Context, b *board.Board) error {
				prefs, err := b.SetPreference(ctx, args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				key, _ := model.CanonicalPreferenceKey(args[0])
				value, _ := prefs.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
				return nil
			})
		},
	})
	return cmd
}
