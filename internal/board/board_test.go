package board

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/focusboard/internal/filter"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/storage"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestBoard(t *testing.T) (*Board, *clock, *storage.Store) {
	t.Helper()
	c := &clock{now: time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)}
	n := 0
	store := storage.NewStore(storage.NewMemoryKV(), nil)
	b := Load(context.Background(), store, nil, WithClock(c.Now), WithIDs(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	return b, c, store
}

// setLocal swaps time.Local for the duration of the test.
func setLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func mustAdd(t *testing.T, b *Board, draft model.Task) model.Task {
	t.Helper()
	task, err := b.AddTask(context.Background(), draft)
	if err != nil {
		t.Fatalf("add task %q: %v", draft.Title, err)
	}
	return task
}

func TestAddTaskStampsAndPersists(t *testing.T) {
	b, c, store := newTestBoard(t)
	ctx := context.Background()

	task := mustAdd(t, b, model.Task{Title: "  Write tests ", Category: "work"})
	if task.ID != "id-1" || task.Title != "Write tests" || task.Priority != model.PriorityMedium {
		t.Fatalf("unexpected task %+v", task)
	}
	if !task.CreatedAt.Equal(c.now) || !task.UpdatedAt.Equal(c.now) {
		t.Fatalf("expected timestamps at now")
	}
	if got := store.Tasks(ctx); len(got) != 1 || got[0].ID != "id-1" {
		t.Fatalf("expected persisted task, got %+v", got)
	}

	if _, err := b.AddTask(ctx, model.Task{Title: " "}); !errors.Is(err, model.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := b.AddTask(ctx, model.Task{Title: "x", Estimate: model.Minutes(-5)}); !errors.Is(err, model.ErrNegativeMinutes) {
		t.Fatalf("expected ErrNegativeMinutes, got %v", err)
	}
	rec := &model.Recurrence{Type: model.RecurrenceDaily, Interval: 1}
	if _, err := b.AddTask(ctx, model.Task{Title: "x", Recurrence: rec}); !errors.Is(err, model.ErrRecurrenceWithoutFlag) {
		t.Fatalf("expected ErrRecurrenceWithoutFlag, got %v", err)
	}
}

func TestUpdateTaskBumpsUpdatedAt(t *testing.T) {
	b, c, _ := newTestBoard(t)
	task := mustAdd(t, b, model.Task{Title: "Draft"})
	c.now = c.now.Add(time.Hour)

	updated, err := b.UpdateTask(context.Background(), task.ID, func(t *model.Task) {
		t.Title = "Final"
		t.ID = "hijack"
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != task.ID || updated.Title != "Final" || !updated.UpdatedAt.Equal(c.now) {
		t.Fatalf("unexpected update %+v", updated)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Fatalf("created at must not change")
	}
	if _, err := b.UpdateTask(context.Background(), "missing", func(*model.Task) {}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestToggleCelebrations(t *testing.T) {
	b, _, _ := newTestBoard(t)
	ctx := context.Background()
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, mustAdd(t, b, model.Task{Title: fmt.Sprintf("t%d", i)}).ID)
	}
	want := map[int]Celebration{5: CelebrationStreak, 10: CelebrationMilestone, 3: CelebrationTask}
	for i, id := range ids {
		got, err := b.ToggleTask(ctx, id)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if w, ok := want[i+1]; ok && got != w {
			t.Fatalf("completion %d: expected %q, got %q", i+1, w, got)
		}
	}
	got, _ := b.ToggleTask(ctx, ids[0])
	if got != CelebrationNone {
		t.Fatalf("reopening must not celebrate, got %q", got)
	}

	prefs := b.Preferences()
	prefs.Celebrations = false
	b.SetPreferences(ctx, prefs)
	if got, _ := b.ToggleTask(ctx, ids[0]); got != CelebrationNone {
		t.Fatalf("celebrations disabled, got %q", got)
	}
}

func TestBulkCompleteSkipsCompleted(t *testing.T) {
	b, _, _ := newTestBoard(t)
	ctx := context.Background()
	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, mustAdd(t, b, model.Task{Title: fmt.Sprintf("t%d", i)}).ID)
	}
	// two of the four selected tasks are already done
	for _, id := range ids[:2] {
		if _, err := b.ToggleTask(ctx, id); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	for _, id := range ids[:4] {
		b.ToggleSelected(id)
	}
	before := b.Stats().Completed

	if n := b.BulkComplete(ctx); n != 2 {
		t.Fatalf("expected 2 newly completed, got %d", n)
	}
	if after := b.Stats().Completed; after-before != 2 {
		t.Fatalf("expected completed count +2, got %d -> %d", before, after)
	}
	for _, id := range ids[:4] {
		if task, ok := b.Task(id); !ok || !task.Completed {
			t.Fatalf("expected %s present and completed", id)
		}
	}
	if b.SelectionCount() != 0 {
		t.Fatalf("expected selection cleared")
	}
}

func TestSelectAllUsesVisibleAndBulkDelete(t *testing.T) {
	b, _, store := newTestBoard(t)
	ctx := context.Background()
	mustAdd(t, b, model.Task{Title: "work one", Category: "work"})
	mustAdd(t, b, model.Task{Title: "home", Category: "personal"})
	mustAdd(t, b, model.Task{Title: "work two", Category: "work"})

	var visible []string
	for _, task := range b.Visible(filter.Criteria{Category: "work"}, true) {
		visible = append(visible, task.ID)
	}
	b.SelectAll(visible)
	if b.SelectionCount() != 2 || b.IsSelected("id-2") {
		t.Fatalf("expected only visible tasks selected, got %v", b.Selected())
	}

	if n := b.BulkDelete(ctx); n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	left := store.Tasks(ctx)
	if len(left) != 1 || left[0].Title != "home" {
		t.Fatalf("unexpected remaining tasks %+v", left)
	}
	if b.SelectionCount() != 0 {
		t.Fatalf("expected selection cleared")
	}
}

func TestSubtasks(t *testing.T) {
	b, _, _ := newTestBoard(t)
	ctx := context.Background()
	task := mustAdd(t, b, model.Task{Title: "Trip"})

	sub, err := b.AddSubtask(ctx, task.ID, "Book hotel")
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	if err := b.ToggleSubtask(ctx, task.ID, sub.ID); err != nil {
		t.Fatalf("toggle subtask: %v", err)
	}
	got, _ := b.Task(task.ID)
	if len(got.Subtasks) != 1 || !got.Subtasks[0].Completed {
		t.Fatalf("expected completed subtask, got %+v", got.Subtasks)
	}
	if err := b.RemoveSubtask(ctx, task.ID, sub.ID); err != nil {
		t.Fatalf("remove subtask: %v", err)
	}
	if err := b.RemoveSubtask(ctx, task.ID, sub.ID); !errors.Is(err, ErrSubtaskNotFound) {
		t.Fatalf("expected ErrSubtaskNotFound, got %v", err)
	}
}

func TestRecordSessionAddsActualTime(t *testing.T) {
	b, _, store := newTestBoard(t)
	ctx := context.Background()
	task := mustAdd(t, b, model.Task{Title: "Deep work", ActualTime: model.Minutes(10)})

	b.RecordSession(ctx, model.PomodoroSession{ID: "s1", TaskID: task.ID, Duration: 25, Type: model.SessionWork, Completed: true})
	b.RecordSession(ctx, model.PomodoroSession{ID: "s2", TaskID: task.ID, Duration: 5, Type: model.SessionShortBreak, Completed: true})

	got, _ := b.Task(task.ID)
	if got.ActualTime == nil || *got.ActualTime != 35 {
		t.Fatalf("expected actual time 35, got %v", got.ActualTime)
	}
	if len(store.Sessions(ctx)) != 2 {
		t.Fatalf("expected both sessions logged")
	}
}

func TestApplyRecurrenceHandsOff(t *testing.T) {
	b, c, _ := newTestBoard(t)
	ctx := context.Background()
	due := c.now
	task := mustAdd(t, b, model.Task{
		Title:       "Weekly review",
		DueDate:     &due,
		IsRecurring: true,
		Recurrence:  &model.Recurrence{Type: model.RecurrenceWeekly, Interval: 7},
	})
	if _, err := b.ToggleTask(ctx, task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	c.now = c.now.Add(6 * 24 * time.Hour)
	if spawns := b.ApplyRecurrence(ctx); len(spawns) != 0 {
		t.Fatalf("expected no spawn before interval")
	}
	c.now = c.now.Add(24 * time.Hour)
	spawns := b.ApplyRecurrence(ctx)
	if len(spawns) != 1 {
		t.Fatalf("expected one spawn, got %d", len(spawns))
	}
	if again := b.ApplyRecurrence(ctx); len(again) != 0 {
		t.Fatalf("expected no respawn, got %d", len(again))
	}
	if len(b.Tasks()) != 2 {
		t.Fatalf("expected two tasks, got %d", len(b.Tasks()))
	}
	parent, _ := b.Task(task.ID)
	if parent.SpawnedTaskID != spawns[0].Task.ID || parent.IsRecurring {
		t.Fatalf("unexpected parent after spawn %+v", parent)
	}
}

func TestCategoriesFallback(t *testing.T) {
	b, _, store := newTestBoard(t)
	ctx := context.Background()

	if got := b.CategoryByID("work"); got.Name != "Work" {
		t.Fatalf("expected seeded work category, got %+v", got)
	}
	if got := b.CategoryByID("deleted"); got.Name != model.Uncategorized().Name {
		t.Fatalf("expected uncategorized fallback, got %+v", got)
	}
	c, err := b.AddCategory(ctx, "Side Project", "", "🚀")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if c.ID != "side-project" || c.Color == "" {
		t.Fatalf("unexpected category %+v", c)
	}
	if len(store.Categories(ctx)) != 6 {
		t.Fatalf("expected category persisted")
	}
	if _, err := b.AddCategory(ctx, " ", "", ""); !errors.Is(err, model.ErrEmptyCategoryName) {
		t.Fatalf("expected ErrEmptyCategoryName, got %v", err)
	}
}

func TestTemplates(t *testing.T) {
	b, _, _ := newTestBoard(t)
	ctx := context.Background()

	tpl, err := b.SaveTemplate(ctx, model.TaskTemplate{
		Name:     "Standup",
		Title:    "Daily standup",
		Priority: model.PriorityHigh,
		Tags:     []string{"team"},
		Estimate: model.Minutes(15),
		Subtasks: []model.TemplateSubtask{{Title: "Yesterday"}, {Title: "Today"}},
	})
	if err != nil {
		t.Fatalf("save template: %v", err)
	}
	dup, err := b.DuplicateTemplate(ctx, tpl.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.Name != "Standup (Copy)" || dup.ID == tpl.ID {
		t.Fatalf("unexpected duplicate %+v", dup)
	}

	task, err := b.CreateFromTemplate(ctx, tpl.ID)
	if err != nil {
		t.Fatalf("create from template: %v", err)
	}
	if task.Title != "Daily standup" || task.Priority != model.PriorityHigh || len(task.Subtasks) != 2 {
		t.Fatalf("unexpected stamped task %+v", task)
	}
	if task.Estimate == nil || *task.Estimate != 15 {
		t.Fatalf("expected estimate copied")
	}
	if found, ok := b.TemplateByName("standup"); !ok || found.ID != tpl.ID {
		t.Fatalf("expected lookup by name")
	}

	if err := b.DeleteTemplate(ctx, tpl.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}
	if _, err := b.CreateFromTemplate(ctx, tpl.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if len(b.Templates()) != 1 {
		t.Fatalf("expected duplicate to remain")
	}
}

func TestStatsAndSuggestions(t *testing.T) {
	setLocal(t, time.UTC)
	b, c, _ := newTestBoard(t)
	ctx := context.Background()

	ids := func(s []Suggestion) map[string]bool {
		out := map[string]bool{}
		for _, v := range s {
			out[v.ID] = true
		}
		return out
	}
	if got := ids(b.Suggestions(nil)); !got["first-task"] || len(got) != 1 {
		t.Fatalf("expected only first-task on empty board, got %v", got)
	}

	yesterday := c.now.Add(-24 * time.Hour)
	laterToday := c.now.Add(2 * time.Hour)
	for i := 0; i < 3; i++ {
		mustAdd(t, b, model.Task{Title: fmt.Sprintf("late %d", i), Priority: model.PriorityHigh, DueDate: &yesterday})
	}
	done := mustAdd(t, b, model.Task{Title: "done"})
	if _, err := b.ToggleTask(ctx, done.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	stats := b.Stats()
	if stats.Total != 4 || stats.Completed != 1 || stats.Overdue != 3 || stats.CompletionRate != 25 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	got := ids(b.Suggestions(nil))
	for _, want := range []string{"overdue-cleanup", "daily-planning", "pomodoro-technique"} {
		if !got[want] {
			t.Fatalf("expected %s in %v", want, got)
		}
	}
	if got["priority-balance"] || got["first-task"] {
		t.Fatalf("unexpected suggestions %v", got)
	}

	mustAdd(t, b, model.Task{Title: "today", DueDate: &laterToday})
	got = ids(b.Suggestions(map[string]bool{"pomodoro-technique": true}))
	if got["daily-planning"] || got["pomodoro-technique"] {
		t.Fatalf("expected daily-planning satisfied and pomodoro dismissed, got %v", got)
	}
	if b.Stats().DueToday != 1 {
		t.Fatalf("expected one task due today")
	}
}

func TestDueTodayUsesLocalCalendarDay(t *testing.T) {
	setLocal(t, time.FixedZone("PDT", -7*60*60))
	b, c, _ := newTestBoard(t)
	// 15:00 local on Oct 16; the UTC date has already rolled to Oct 17 for
	// anything due after 17:00 local.
	c.now = time.Date(2026, 10, 16, 22, 0, 0, 0, time.UTC)
	due := time.Date(2026, 10, 16, 23, 0, 0, 0, time.Local)
	mustAdd(t, b, model.Task{Title: "file report", DueDate: &due})

	if got := b.Stats().DueToday; got != 1 {
		t.Fatalf("expected task due later today to count, got %d", got)
	}
	for _, s := range b.Suggestions(nil) {
		if s.ID == "daily-planning" {
			t.Fatalf("daily-planning must not fire with a task due today: %+v", b.Suggestions(nil))
		}
	}

	tomorrow := time.Date(2026, 10, 17, 0, 30, 0, 0, time.Local)
	mustAdd(t, b, model.Task{Title: "standup", DueDate: &tomorrow})
	if got := b.Stats().DueToday; got != 1 {
		t.Fatalf("task due after local midnight must not count as today, got %d", got)
	}
}
