package board

import (
	"math"
	"strings"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

type Stats struct {
	Total          int
	Completed      int
	Active         int
	DueToday       int
	Overdue        int
	CompletionRate int
}

func (b *Board) Stats() Stats {
	now := b.now()
	today := localDay(now)
	var s Stats
	s.Total = len(b.tasks)
	for _, t := range b.tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		if t.IsDueOn(today) {
			s.DueToday++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// localDay moves now into the local zone so "today" is the user's calendar
// day, the same zone due dates are entered and shown in.
func localDay(now time.Time) time.Time {
	return now.In(time.Local)
}

type SuggestionKind string

const (
	KindProductivity   SuggestionKind = "productivity"
	KindOrganization   SuggestionKind = "organization"
	KindTimeManagement SuggestionKind = "time-management"
	KindWellness       SuggestionKind = "wellness"
)

// Suggestion is a dismissible hint. A non-empty TaskTitle means accepting it
// creates a task with that title.
type Suggestion struct {
	ID          string
	Kind        SuggestionKind
	Title       string
	Description string
	TaskTitle   string
}

// Suggestions evaluates the hint rules against the working set in a fixed
// order and drops dismissed ids.
func (b *Board) Suggestions(dismissed map[string]bool) []Suggestion {
	now := b.now()
	today := localDay(now)
	var active, overdue, openHigh, dueToday int
	restPlanned := false
	for _, t := range b.tasks {
		title := strings.ToLower(t.Title)
		if strings.Contains(title, "break") || strings.Contains(title, "rest") {
			restPlanned = true
		}
		if t.Completed {
			continue
		}
		active++
		if t.IsOverdue(now) {
			overdue++
		}
		if t.Priority == model.PriorityHigh {
			openHigh++
		}
		if t.IsDueOn(today) {
			dueToday++
		}
	}

	var out []Suggestion
	add := func(s Suggestion) {
		if !dismissed[s.ID] {
			out = append(out, s)
		}
	}
	if len(b.tasks) == 0 {
		add(Suggestion{
			ID:          "first-task",
			Kind:        KindProductivity,
			Title:       "Welcome to focusboard",
			Description: `Start by creating your first task. Try something simple like "Buy groceries".`,
			TaskTitle:   "My first task",
		})
	}
	if overdue >= 3 {
		add(Suggestion{
			ID:          "overdue-cleanup",
			Kind:        KindTimeManagement,
			Title:       "Time to catch up",
			Description: "You have several overdue tasks. Consider breaking them into smaller pieces.",
		})
	}
	if openHigh >= 5 {
		add(Suggestion{
			ID:          "priority-balance",
			Kind:        KindOrganization,
			Title:       "Priority balance",
			Description: "Many tasks are high priority. Some could be medium to keep focus.",
		})
	}
	if active > 0 && dueToday == 0 {
		add(Suggestion{
			ID:          "daily-planning",
			Kind:        KindProductivity,
			Title:       "Plan your day",
			Description: "Set due dates on your tasks to stay organized.",
		})
	}
	if len(b.tasks) >= 10 && !restPlanned {
		add(Suggestion{
			ID:          "wellness-break",
			Kind:        KindWellness,
			Title:       "Remember to rest",
			Description: "Schedule breaks alongside the work.",
			TaskTitle:   "Take a 15-minute break",
		})
	}
	if active >= 3 {
		add(Suggestion{
			ID:          "pomodoro-technique",
			Kind:        KindProductivity,
			Title:       "Try the Pomodoro technique",
			Description: "Work in focused 25-minute sessions with short breaks in between.",
		})
	}
	return out
}
