package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineStressScheduleAndCancel(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200
	total := workers * perWorker

	now := time.Now().UTC()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			parked := fmt.Sprintf("parked-%d", w)
			for i := 0; i < perWorker; i++ {
				delay := time.Duration((w+i)%50+10) * time.Millisecond
				if err := engine.Schedule(DueEvent{TaskID: fmt.Sprintf("w%d-task-%d", w, i), DueAt: now.Add(delay)}); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
				if i%20 == 0 {
					_ = engine.Schedule(DueEvent{TaskID: parked, DueAt: now.Add(time.Hour)})
				}
			}
			if n := engine.Cancel(parked); n != perWorker/20 {
				t.Errorf("worker %d: expected %d parked cancelled, got %d", w, perWorker/20, n)
			}
		}()
	}
	wg.Wait()

	deadline := time.After(5 * time.Second)
	received := 0
	for received < total {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting events: received=%d total=%d dropped=%d", received, total, engine.Dropped())
		case ev := <-engine.C():
			if len(ev.TaskID) > 6 && ev.TaskID[:6] == "parked" {
				t.Fatalf("cancelled event delivered: %s", ev.TaskID)
			}
			received++
		}
	}

	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d pending", engine.Pending())
	}
}
