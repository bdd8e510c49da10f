package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(DueEvent{TaskID: "later", DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(DueEvent{TaskID: "sooner", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(DueEvent{TaskID: "evt", DueAt: now}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesDueTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(DueEvent{TaskID: "bad"}); !errors.Is(err, ErrInvalidDueTime) {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
}

func TestCancelRemovesPendingEvents(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	_ = engine.Schedule(DueEvent{TaskID: "gone", DueAt: now.Add(30 * time.Millisecond)})
	_ = engine.Schedule(DueEvent{TaskID: "kept", DueAt: now.Add(60 * time.Millisecond)})

	if n := engine.Cancel("gone"); n != 1 {
		t.Fatalf("expected 1 cancelled, got %d", n)
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.TaskID != "kept" {
		t.Fatalf("expected kept event, got %s", ev.TaskID)
	}
}

func TestSyncSchedulesOpenFutureTasks(t *testing.T) {
	engine := NewEngine(4)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	soon := now.Add(time.Hour)
	later := now.Add(2 * time.Hour)

	tasks := []model.Task{
		{ID: "past", Title: "past", DueDate: &past},
		{ID: "soon", Title: "soon", DueDate: &soon},
		{ID: "done", Title: "done", DueDate: &later, Completed: true},
		{ID: "undated", Title: "undated"},
		{ID: "later", Title: "later", DueDate: &later},
	}
	n, err := engine.Sync(tasks, now)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if n != 2 || engine.Pending() != 2 {
		t.Fatalf("expected 2 pending, got %d/%d", n, engine.Pending())
	}
	if _, err := engine.Sync(tasks[:1], now); err != nil || engine.Pending() != 0 {
		t.Fatalf("expected resync to replace pending set, got %d (%v)", engine.Pending(), err)
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
