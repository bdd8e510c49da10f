// Package scheduler emits an event when a task's due time arrives.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrEngineStopped  = errors.New("scheduler: engine stopped")
)

type DueEvent struct {
	TaskID string
	Title  string
	DueAt  time.Time
}

type queueItem struct {
	event DueEvent
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].event.DueAt.Before(pq[j].event.DueAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// Engine keeps pending due events in a min-heap and delivers them on C when
// they come due. Delivery never blocks: events that find C full are dropped
// and counted.
type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	out     chan DueEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		out:    make(chan DueEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan DueEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev DueEvent) error {
	if ev.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}

	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return nil
}

// Cancel drops every pending event for taskID and returns how many were
// removed.
func (e *Engine) Cancel(taskID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.queue[:0]
	removed := 0
	for _, item := range e.queue {
		if item.event.TaskID == taskID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed == 0 {
		return 0
	}
	e.queue = kept
	heap.Init(&e.queue)
	e.signalWakeup()
	return removed
}

// Sync replaces the pending set with one event per open task whose due date
// is after now. It returns the number scheduled.
func (e *Engine) Sync(tasks []model.Task, now time.Time) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return 0, ErrEngineStopped
	}
	e.queue = e.queue[:0]
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil || !t.DueDate.After(now) {
			continue
		}
		e.queue = append(e.queue, queueItem{event: DueEvent{TaskID: t.ID, Title: t.Title, DueAt: *t.DueDate}})
	}
	heap.Init(&e.queue)
	e.signalWakeup()
	return len(e.queue), nil
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (DueEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return DueEvent{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []DueEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]DueEvent, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.DueAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
