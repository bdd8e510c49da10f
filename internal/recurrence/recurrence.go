// Package recurrence spawns successors for completed recurring tasks.
package recurrence

import (
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

const day = 24 * time.Hour

// Spawn pairs a successor with the parent it was cloned from.
type Spawn struct {
	ParentID string
	Task     model.Task
}

// Due reports whether t should spawn a successor at now: the task is a
// completed recurring task, at least Interval whole days have passed since
// its last update, and the rule has not ended.
func Due(t model.Task, now time.Time) bool {
	if !t.IsRecurring || t.Recurrence == nil || !t.Completed {
		return false
	}
	if t.Recurrence.Ended(now) {
		return false
	}
	interval := t.Recurrence.Interval
	if interval < 1 {
		interval = 1
	}
	days := int(now.Sub(t.UpdatedAt) / day)
	return days >= interval
}

// Successor clones t into a fresh open task. The due date, when present, is
// pushed forward by the interval in days.
func Successor(t model.Task, id string, now time.Time) model.Task {
	next := t.Clone()
	next.ID = id
	next.Completed = false
	next.CreatedAt = now
	next.UpdatedAt = now
	next.SpawnedTaskID = ""
	if t.DueDate != nil {
		due := t.DueDate.AddDate(0, 0, t.Recurrence.Interval)
		next.DueDate = &due
	}
	return next
}

// Check returns the updated task list with every due successor appended.
// Each parent hands its rule to the successor: the parent stops recurring and
// records the successor id, so repeated checks never spawn twice from it.
func Check(tasks []model.Task, now time.Time, newID func() string) ([]model.Task, []Spawn) {
	var spawns []Spawn
	out := make([]model.Task, len(tasks), len(tasks)+1)
	copy(out, tasks)
	for i := range tasks {
		if !Due(tasks[i], now) {
			continue
		}
		child := Successor(tasks[i], newID(), now)
		out[i].IsRecurring = false
		out[i].Recurrence = nil
		out[i].SpawnedTaskID = child.ID
		out[i].UpdatedAt = now
		out = append(out, child)
		spawns = append(spawns, Spawn{ParentID: tasks[i].ID, Task: child})
	}
	return out, spawns
}
