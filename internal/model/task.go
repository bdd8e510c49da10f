package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle            = errors.New("model: task title is required")
	ErrInvalidPriority       = errors.New("model: invalid task priority")
	ErrNegativeMinutes       = errors.New("model: minutes must not be negative")
	ErrRecurrenceWithoutFlag = errors.New("model: recurrence set on a non-recurring task")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Weight orders priorities low(1) < medium(2) < high(3). Unknown values weigh 0.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

type Subtask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Completed     bool        `json:"completed"`
	Priority      Priority    `json:"priority"`
	Category      string      `json:"category"`
	Tags          []string    `json:"tags"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	Estimate      *int        `json:"estimate,omitempty"`
	ActualTime    *int        `json:"actualTime,omitempty"`
	Subtasks      []Subtask   `json:"subtasks,omitempty"`
	IsRecurring   bool        `json:"isRecurring,omitempty"`
	Recurrence    *Recurrence `json:"recurrence,omitempty"`
	SpawnedTaskID string      `json:"spawnedTaskId,omitempty"`
	Notes         string      `json:"notes,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.Estimate != nil && *t.Estimate < 0 {
		return fmt.Errorf("%w: estimate %d", ErrNegativeMinutes, *t.Estimate)
	}
	if t.ActualTime != nil && *t.ActualTime < 0 {
		return fmt.Errorf("%w: actual time %d", ErrNegativeMinutes, *t.ActualTime)
	}
	if t.Recurrence != nil {
		if !t.IsRecurring {
			return ErrRecurrenceWithoutFlag
		}
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsOverdue reports whether an open task has a due date strictly before now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// IsDueOn reports whether the due date falls on the same calendar day as day,
// evaluated in day's location.
func (t Task) IsDueOn(day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Clone copies the task deeply enough that mutating slices or pointers on the
// copy leaves the original untouched.
func (t Task) Clone() Task {
	out := t
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	if t.Subtasks != nil {
		out.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.Estimate != nil {
		v := *t.Estimate
		out.Estimate = &v
	}
	if t.ActualTime != nil {
		v := *t.ActualTime
		out.ActualTime = &v
	}
	if t.Recurrence != nil {
		rec := t.Recurrence.Clone()
		out.Recurrence = &rec
	}
	return out
}

func Minutes(v int) *int {
	return &v
}
