// Package board holds the authoritative in-memory working set and flushes it
// to the store after every mutation.
package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sandeepkv93/focusboard/internal/filter"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/recurrence"
	"github.com/sandeepkv93/focusboard/internal/storage"
)

var (
	ErrTaskNotFound     = errors.New("board: task not found")
	ErrSubtaskNotFound  = errors.New("board: subtask not found")
	ErrTemplateNotFound = errors.New("board: template not found")
	ErrCategoryNotFound = errors.New("board: category not found")
)

type Celebration string

const (
	CelebrationNone      Celebration = ""
	CelebrationTask      Celebration = "task"
	CelebrationStreak    Celebration = "streak"
	CelebrationMilestone Celebration = "milestone"
)

type Board struct {
	store  *storage.Store
	logger *log.Logger
	now    func() time.Time
	newID  func() string

	tasks      []model.Task
	categories []model.Category
	templates  []model.TaskTemplate
	prefs      model.Preferences
	selected   map[string]bool
}

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

func WithIDs(newID func() string) Option {
	return func(b *Board) { b.newID = newID }
}

// Load reads every record from the store. Missing or unreadable records fall
// back to defaults inside the store.
func Load(ctx context.Context, store *storage.Store, logger *log.Logger, opts ...Option) *Board {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Board{
		store:    store,
		logger:   logger.WithPrefix("board"),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		selected: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Reload(ctx)
	return b
}

// Reload replaces the working set with the stored records and drops any
// selection that no longer refers to a task.
func (b *Board) Reload(ctx context.Context) {
	b.tasks = b.store.Tasks(ctx)
	b.categories = b.store.Categories(ctx)
	b.templates = b.store.Templates(ctx)
	b.prefs = b.store.Preferences(ctx)
	for id := range b.selected {
		if b.indexOf(id) < 0 {
			delete(b.selected, id)
		}
	}
}

func (b *Board) Now() time.Time {
	return b.now()
}

func (b *Board) Store() *storage.Store {
	return b.store
}

// Tasks returns a copy of the working set in insertion order.
func (b *Board) Tasks() []model.Task {
	return append([]model.Task(nil), b.tasks...)
}

func (b *Board) Task(id string) (model.Task, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return b.tasks[i], true
}

// Visible projects the working set through the filter engine at the current
// time.
func (b *Board) Visible(c filter.Criteria, showCompleted bool) []model.Task {
	return filter.Project(b.tasks, c, showCompleted, b.now())
}

func (b *Board) Preferences() model.Preferences {
	return b.prefs
}

func (b *Board) SetPreferences(ctx context.Context, prefs model.Preferences) {
	b.prefs = prefs
	b.store.SavePreferences(ctx, prefs)
}

// SetPreference edits one preference by its stored name and persists the
// result. A defaultCategory must name an existing category.
func (b *Board) SetPreference(ctx context.Context, key, value string) (model.Preferences, error) {
	prefs := b.prefs
	if err := prefs.Set(key, value); err != nil {
		return b.prefs, err
	}
	if prefs.DefaultCategory != b.prefs.DefaultCategory {
		if _, ok := b.lookupCategory(prefs.DefaultCategory); !ok {
			return b.prefs, fmt.Errorf("%w: %q", ErrCategoryNotFound, prefs.DefaultCategory)
		}
	}
	b.SetPreferences(ctx, prefs)
	return prefs, nil
}

// AddTask stamps id and timestamps onto draft, validates it and appends it.
func (b *Board) AddTask(ctx context.Context, draft model.Task) (model.Task, error) {
	now := b.now()
	task := draft.Clone()
	task.ID = b.newID()
	task.Title = strings.TrimSpace(task.Title)
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	b.tasks = append(b.tasks, task)
	b.persistTasks(ctx)
	b.logger.Debug("task added", "id", task.ID)
	return task, nil
}

// UpdateTask applies fn to a copy of the task, validates the result and bumps
// UpdatedAt. The id and creation time cannot be changed by fn.
func (b *Board) UpdateTask(ctx context.Context, id string, fn func(*model.Task)) (model.Task, error) {
	i := b.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	next := b.tasks[i].Clone()
	fn(&next)
	next.ID = b.tasks[i].ID
	next.CreatedAt = b.tasks[i].CreatedAt
	next.UpdatedAt = b.now()
	if err := next.Validate(); err != nil {
		return model.Task{}, err
	}
	b.tasks[i] = next
	b.persistTasks(ctx)
	return next, nil
}

// ToggleTask flips completion. Completing a task yields a celebration kind
// when celebrations are enabled: every tenth completed task is a milestone,
// every fifth a streak.
func (b *Board) ToggleTask(ctx context.Context, id string) (Celebration, error) {
	i := b.indexOf(id)
	if i < 0 {
		return CelebrationNone, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	completing := !b.tasks[i].Completed
	celebration := CelebrationNone
	if completing && b.prefs.Celebrations {
		celebration = celebrationFor(b.completedCount() + 1)
	}
	if _, err := b.UpdateTask(ctx, id, func(t *model.Task) { t.Completed = completing }); err != nil {
		return CelebrationNone, err
	}
	return celebration, nil
}

func celebrationFor(completed int) Celebration {
	switch {
	case completed%10 == 0:
		return CelebrationMilestone
	case completed%5 == 0:
		return CelebrationStreak
	default:
		return CelebrationTask
	}
}

func (b *Board) DeleteTask(ctx context.Context, id string) error {
	i := b.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
	delete(b.selected, id)
	b.persistTasks(ctx)
	return nil
}

// AddTaskFromSuggestion creates a medium priority task in the first category.
func (b *Board) AddTaskFromSuggestion(ctx context.Context, title string) (model.Task, error) {
	category := "personal"
	if len(b.categories) > 0 {
		category = b.categories[0].ID
	}
	return b.AddTask(ctx, model.Task{Title: title, Priority: model.PriorityMedium, Category: category})
}

// AddActualTime adds minutes to the task's tracked time.
func (b *Board) AddActualTime(ctx context.Context, id string, minutes int) error {
	_, err := b.UpdateTask(ctx, id, func(t *model.Task) {
		spent := minutes
		if t.ActualTime != nil {
			spent += *t.ActualTime
		}
		t.ActualTime = model.Minutes(spent)
	})
	return err
}

// RecordSession logs a finished focus session. Completed work sessions attached
// to a task add their duration to that task's actual time.
func (b *Board) RecordSession(ctx context.Context, session model.PomodoroSession) {
	b.store.AppendSession(ctx, session)
	if !session.Completed || session.Type != model.SessionWork || session.TaskID == "" {
		return
	}
	if err := b.AddActualTime(ctx, session.TaskID, session.Duration); err != nil {
		b.logger.Warn("session task missing", "task", session.TaskID, "err", err)
	}
}

func (b *Board) AddSubtask(ctx context.Context, taskID, title string) (model.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Subtask{}, model.ErrEmptyTitle
	}
	sub := model.Subtask{ID: b.newID(), Title: title, CreatedAt: b.now()}
	_, err := b.UpdateTask(ctx, taskID, func(t *model.Task) {
		t.Subtasks = append(t.Subtasks, sub)
	})
	if err != nil {
		return model.Subtask{}, err
	}
	return sub, nil
}

func (b *Board) ToggleSubtask(ctx context.Context, taskID, subID string) error {
	return b.editSubtask(ctx, taskID, subID, func(subs []model.Subtask, i int) []model.Subtask {
		subs[i].Completed = !subs[i].Completed
		return subs
	})
}

func (b *Board) RemoveSubtask(ctx context.Context, taskID, subID string) error {
	return b.editSubtask(ctx, taskID, subID, func(subs []model.Subtask, i int) []model.Subtask {
		return append(subs[:i], subs[i+1:]...)
	})
}

func (b *Board) editSubtask(ctx context.Context, taskID, subID string, edit func([]model.Subtask, int) []model.Subtask) error {
	task, ok := b.Task(taskID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrTaskNotFound, taskID)
	}
	idx := -1
	for i, s := range task.Subtasks {
		if s.ID == subID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrSubtaskNotFound, subID)
	}
	_, err := b.UpdateTask(ctx, taskID, func(t *model.Task) {
		t.Subtasks = edit(t.Subtasks, idx)
	})
	return err
}

// ApplyRecurrence spawns successors for due recurring tasks and persists the
// result when anything changed.
func (b *Board) ApplyRecurrence(ctx context.Context) []recurrence.Spawn {
	tasks, spawns := recurrence.Check(b.tasks, b.now(), b.newID)
	if len(spawns) == 0 {
		return nil
	}
	b.tasks = tasks
	b.persistTasks(ctx)
	b.logger.Info("recurring tasks spawned", "count", len(spawns))
	return spawns
}

func (b *Board) completedCount() int {
	n := 0
	for _, t := range b.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func (b *Board) indexOf(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) persistTasks(ctx context.Context) {
	b.store.SaveTasks(ctx, b.tasks)
}
