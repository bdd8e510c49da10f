package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Implement model validation",
		Priority:  PriorityHigh,
		Category:  "work",
		CreatedAt: now,
		UpdatedAt: now,
		Estimate:  Minutes(30),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want error
	}{
		{"empty title", Task{Title: "  ", Priority: PriorityLow}, ErrEmptyTitle},
		{"bad priority", Task{Title: "x", Priority: Priority("urgent")}, ErrInvalidPriority},
		{"negative estimate", Task{Title: "x", Priority: PriorityLow, Estimate: Minutes(-1)}, ErrNegativeMinutes},
		{"negative actual", Task{Title: "x", Priority: PriorityLow, ActualTime: Minutes(-5)}, ErrNegativeMinutes},
		{
			"recurrence without flag",
			Task{Title: "x", Priority: PriorityLow, Recurrence: &Recurrence{Type: RecurrenceDaily, Interval: 1}},
			ErrRecurrenceWithoutFlag,
		},
		{
			"bad recurrence interval",
			Task{Title: "x", Priority: PriorityLow, IsRecurring: true, Recurrence: &Recurrence{Type: RecurrenceDaily}},
			ErrInvalidInterval,
		},
	}
	for _, tc := range cases {
		if err := tc.task.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	if !(Task{DueDate: &yesterday}).IsOverdue(now) {
		t.Fatal("expected open task due yesterday to be overdue")
	}
	if (Task{DueDate: &yesterday, Completed: true}).IsOverdue(now) {
		t.Fatal("completed task must not be overdue")
	}
	if (Task{DueDate: &tomorrow}).IsOverdue(now) {
		t.Fatal("task due tomorrow must not be overdue")
	}
	if (Task{}).IsOverdue(now) {
		t.Fatal("task without due date must not be overdue")
	}
}

func TestTaskCloneIsIndependent(t *testing.T) {
	due := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	orig := Task{
		Title:       "orig",
		Tags:        []string{"a"},
		DueDate:     &due,
		Estimate:    Minutes(10),
		IsRecurring: true,
		Recurrence:  &Recurrence{Type: RecurrenceWeekly, Interval: 7, DaysOfWeek: []int{1}},
	}
	cp := orig.Clone()
	cp.Tags[0] = "b"
	*cp.DueDate = due.Add(time.Hour)
	*cp.Estimate = 99
	cp.Recurrence.DaysOfWeek[0] = 3

	if orig.Tags[0] != "a" || !orig.DueDate.Equal(due) || *orig.Estimate != 10 || orig.Recurrence.DaysOfWeek[0] != 1 {
		t.Fatalf("clone shares state with original: %+v", orig)
	}
}

func TestParseEnums(t *testing.T) {
	if p, err := ParsePriority("HIGH"); err != nil || p != PriorityHigh {
		t.Fatalf("parse priority: %v %q", err, p)
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if s, err := ParseSortType("duedate"); err != nil || s != SortDueDate {
		t.Fatalf("parse sort type: %v %q", err, s)
	}
	if _, err := ParseFilterType("later"); !errors.Is(err, ErrInvalidFilterType) {
		t.Fatalf("expected ErrInvalidFilterType, got %v", err)
	}
	if s, err := ParseSessionType("long-break"); err != nil || s != SessionLongBreak {
		t.Fatalf("parse session type: %v %q", err, s)
	}
	if _, err := ParseSessionType("nap"); err == nil {
		t.Fatal("expected error for unknown session type")
	}
	if FilterOverdue.Next() != FilterAll || SortTitle.Next() != SortDueDate {
		t.Fatal("enum cycles must wrap around")
	}
	if SortAsc.Flip() != SortDesc || SortDesc.Flip() != SortAsc {
		t.Fatal("unexpected sort order flip")
	}
}
