package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/focusboard/internal/model"
)

const (
	KeyTasks            = "focusboard-tasks"
	KeyCategories       = "focusboard-categories"
	KeyPreferences      = "focusboard-preferences"
	KeyTemplates        = "focusboard-templates"
	KeyPomodoroSessions = "focusboard-pomodoro"
)

// AllKeys lists every key the store owns; ClearAll removes exactly these.
var AllKeys = []string{KeyTasks, KeyCategories, KeyPreferences, KeyTemplates, KeyPomodoroSessions}

var ErrMalformedImport = errors.New("storage: malformed import document")

// Store maps domain records onto independently keyed JSON values. Read and
// write failures are logged and degrade to defaults; they never reach callers.
type Store struct {
	kv     KV
	logger *log.Logger
}

func NewStore(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{kv: kv, logger: logger.WithPrefix("store")}
}

func (s *Store) Tasks(ctx context.Context) []model.Task {
	return load(ctx, s, KeyTasks, func() []model.Task { return []model.Task{} })
}

func (s *Store) SaveTasks(ctx context.Context, tasks []model.Task) {
	s.save(ctx, KeyTasks, nonNil(tasks))
}

func (s *Store) Categories(ctx context.Context) []model.Category {
	return load(ctx, s, KeyCategories, model.DefaultCategories)
}

func (s *Store) SaveCategories(ctx context.Context, categories []model.Category) {
	s.save(ctx, KeyCategories, nonNil(categories))
}

func (s *Store) Preferences(ctx context.Context) model.Preferences {
	return load(ctx, s, KeyPreferences, model.DefaultPreferences)
}

func (s *Store) SavePreferences(ctx context.Context, prefs model.Preferences) {
	s.save(ctx, KeyPreferences, prefs)
}

func (s *Store) Templates(ctx context.Context) []model.TaskTemplate {
	return load(ctx, s, KeyTemplates, func() []model.TaskTemplate { return []model.TaskTemplate{} })
}

func (s *Store) SaveTemplates(ctx context.Context, templates []model.TaskTemplate) {
	s.save(ctx, KeyTemplates, nonNil(templates))
}

func (s *Store) Sessions(ctx context.Context) []model.PomodoroSession {
	return load(ctx, s, KeyPomodoroSessions, func() []model.PomodoroSession { return []model.PomodoroSession{} })
}

func (s *Store) SaveSessions(ctx context.Context, sessions []model.PomodoroSession) {
	s.save(ctx, KeyPomodoroSessions, nonNil(sessions))
}

// AppendSession adds one entry to the session log.
func (s *Store) AppendSession(ctx context.Context, session model.PomodoroSession) {
	s.SaveSessions(ctx, append(s.Sessions(ctx), session))
}

type ExportDocument struct {
	Tasks       []model.Task         `json:"tasks"`
	Categories  []model.Category     `json:"categories"`
	Templates   []model.TaskTemplate `json:"templates"`
	Preferences model.Preferences    `json:"preferences"`
	ExportDate  time.Time            `json:"exportDate"`
}

// Export bundles tasks, categories, templates and preferences into one
// indented JSON document.
func (s *Store) Export(ctx context.Context, now time.Time) ([]byte, error) {
	doc := ExportDocument{
		Tasks:       s.Tasks(ctx),
		Categories:  s.Categories(ctx),
		Templates:   s.Templates(ctx),
		Preferences: s.Preferences(ctx),
		ExportDate:  now.UTC(),
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return out, nil
}

// Import replaces every key present in data and leaves absent keys untouched.
// The whole document is decoded before anything is written, so a malformed
// document applies nothing.
func (s *Store) Import(ctx context.Context, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: document is null", ErrMalformedImport)
	}

	var (
		tasks       []model.Task
		categories  []model.Category
		templates   []model.TaskTemplate
		preferences model.Preferences
	)
	fields := []struct {
		key  string
		dest any
	}{
		{"tasks", &tasks},
		{"categories", &categories},
		{"templates", &templates},
		{"preferences", &preferences},
	}
	present := make(map[string]bool, len(fields))
	for _, f := range fields {
		msg, ok := raw[f.key]
		if !ok || string(msg) == "null" {
			continue
		}
		if err := json.Unmarshal(msg, f.dest); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedImport, f.key, err)
		}
		present[f.key] = true
	}

	if present["tasks"] {
		s.SaveTasks(ctx, tasks)
	}
	if present["categories"] {
		s.SaveCategories(ctx, categories)
	}
	if present["templates"] {
		s.SaveTemplates(ctx, templates)
	}
	if present["preferences"] {
		s.SavePreferences(ctx, preferences)
	}
	s.logger.Info("import applied", "tasks", present["tasks"], "categories", present["categories"],
		"templates", present["templates"], "preferences", present["preferences"])
	return nil
}

func (s *Store) ClearAll(ctx context.Context) {
	for _, key := range AllKeys {
		if err := s.kv.Remove(ctx, key); err != nil {
			s.logger.Error("remove failed", "key", key, "err", err)
		}
	}
}

func load[T any](ctx context.Context, s *Store, key string, fallback func() T) T {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("read failed", "key", key, "err", err)
		}
		return fallback()
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("decode failed", "key", key, "err", err)
		return fallback()
	}
	return out
}

func (s *Store) save(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode failed", "key", key, "err", err)
		return
	}
	if err := s.kv.Set(ctx, key, string(payload)); err != nil {
		s.logger.Error("write failed", "key", key, "err", err)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
