package recurrence

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

var now = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("spawn-%d", n)
	}
}

func recurringTask(interval int, updatedAgo time.Duration) model.Task {
	due := now.Add(-updatedAgo)
	return model.Task{
		ID:          "parent",
		Title:       "Water plants",
		Priority:    model.PriorityMedium,
		Completed:   true,
		Tags:        []string{"home"},
		DueDate:     &due,
		CreatedAt:   now.Add(-30 * 24 * time.Hour),
		UpdatedAt:   now.Add(-updatedAgo),
		IsRecurring: true,
		Recurrence:  &model.Recurrence{Type: model.RecurrenceDaily, Interval: interval},
	}
}

func TestCheckSpawnsOneSuccessor(t *testing.T) {
	parent := recurringTask(2, 3*24*time.Hour)
	tasks, spawns := Check([]model.Task{parent}, now, sequentialIDs())

	if len(tasks) != 2 || len(spawns) != 1 {
		t.Fatalf("expected one spawn, got %d tasks %d spawns", len(tasks), len(spawns))
	}
	child := tasks[1]
	if child.ID != "spawn-1" || child.Completed {
		t.Fatalf("unexpected successor %+v", child)
	}
	if !child.CreatedAt.Equal(now) || !child.UpdatedAt.Equal(now) {
		t.Fatalf("expected successor timestamps at now, got %s/%s", child.CreatedAt, child.UpdatedAt)
	}
	wantDue := parent.DueDate.AddDate(0, 0, 2)
	if child.DueDate == nil || !child.DueDate.Equal(wantDue) {
		t.Fatalf("expected due %s, got %v", wantDue, child.DueDate)
	}
	if !child.IsRecurring || child.Recurrence == nil || child.Recurrence.Interval != 2 {
		t.Fatalf("expected successor to inherit recurrence, got %+v", child.Recurrence)
	}
	if spawns[0].ParentID != "parent" {
		t.Fatalf("expected parent id in spawn, got %q", spawns[0].ParentID)
	}

	handedOff := tasks[0]
	if handedOff.IsRecurring || handedOff.Recurrence != nil || handedOff.SpawnedTaskID != "spawn-1" {
		t.Fatalf("expected parent hand-off, got %+v", handedOff)
	}
	if !handedOff.Completed {
		t.Fatalf("parent must stay completed")
	}
	if parent.Recurrence == nil || !parent.IsRecurring {
		t.Fatalf("input slice must not be mutated")
	}
}

func TestCheckDoesNotRespawn(t *testing.T) {
	ids := sequentialIDs()
	tasks, _ := Check([]model.Task{recurringTask(1, 5*24*time.Hour)}, now, ids)
	tasks, spawns := Check(tasks, now.Add(time.Minute), ids)
	if len(spawns) != 0 || len(tasks) != 2 {
		t.Fatalf("expected no second spawn, got %d spawns %d tasks", len(spawns), len(tasks))
	}
}

func TestCheckSkips(t *testing.T) {
	ended := now.Add(-time.Hour)
	open := recurringTask(1, 3*24*time.Hour)
	open.Completed = false
	tooSoon := recurringTask(3, 2*24*time.Hour+23*time.Hour)
	finished := recurringTask(1, 3*24*time.Hour)
	finished.Recurrence.EndDate = &ended
	plain := recurringTask(1, 3*24*time.Hour)
	plain.IsRecurring = false
	plain.Recurrence = nil

	for name, task := range map[string]model.Task{"open": open, "too soon": tooSoon, "ended": finished, "not recurring": plain} {
		_, spawns := Check([]model.Task{task}, now, sequentialIDs())
		if len(spawns) != 0 {
			t.Fatalf("%s: expected no spawn", name)
		}
	}
}

func TestDueAtIntervalBoundary(t *testing.T) {
	cases := []struct {
		name     string
		interval int
		elapsed  time.Duration
		want     bool
	}{
		{"exactly one interval", 3, 3 * 24 * time.Hour, true},
		{"one nanosecond short", 3, 3*24*time.Hour - time.Nanosecond, false},
		{"daily exactly", 1, 24 * time.Hour, true},
		{"daily just short", 1, 24*time.Hour - time.Nanosecond, false},
	}
	for _, tc := range cases {
		task := recurringTask(tc.interval, tc.elapsed)
		if got := Due(task, now); got != tc.want {
			t.Fatalf("%s: Due = %v, want %v", tc.name, got, tc.want)
		}
		_, spawns := Check([]model.Task{task}, now, sequentialIDs())
		if (len(spawns) == 1) != tc.want {
			t.Fatalf("%s: expected spawn=%v, got %d spawns", tc.name, tc.want, len(spawns))
		}
	}
}

func TestSuccessorWithoutDueDate(t *testing.T) {
	parent := recurringTask(1, 2*24*time.Hour)
	parent.DueDate = nil
	child := Successor(parent, "x", now)
	if child.DueDate != nil {
		t.Fatalf("expected no due date, got %v", child.DueDate)
	}
	child.Tags[0] = "changed"
	if parent.Tags[0] != "home" {
		t.Fatalf("successor shares tag storage with parent")
	}
}

func TestTickerDelivers(t *testing.T) {
	if _, err := NewTicker(500*time.Millisecond, nil); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}

	ticker, err := NewTicker(time.Second, nil)
	if err != nil {
		t.Fatalf("new ticker: %v", err)
	}
	ticker.Start()
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a tick within 3s")
	}
}
