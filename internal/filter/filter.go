// Package filter projects the task list into the ordered, visible subset shown
// by the UI.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Criteria is the set of active predicates. Zero values mean "unset": an empty
// Category or Priority matches everything, an empty Type behaves like
// model.FilterAll and an empty Sort leaves the input order alone.
type Criteria struct {
	Category string
	Priority model.Priority
	Search   string
	Type     model.FilterType
	Sort     model.SortType
	Order    model.SortOrder
}

// CriteriaFromPreferences seeds sort settings from stored preferences.
func CriteriaFromPreferences(p model.Preferences) Criteria {
	return Criteria{Type: model.FilterAll, Sort: p.SortBy, Order: p.SortOrder}
}

// Project returns the tasks passing c, stably sorted. The input slice is not
// modified.
func Project(tasks []model.Task, c Criteria, showCompleted bool, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, c, showCompleted, now) {
			out = append(out, t)
		}
	}
	Sort(out, c.Sort, c.Order)
	return out
}

// Matches evaluates the predicates for a single task. A non-empty search
// decides the result on its own and skips the filter type.
func Matches(t model.Task, c Criteria, showCompleted bool, now time.Time) bool {
	if !showCompleted && t.Completed {
		return false
	}
	if c.Category != "" && t.Category != c.Category {
		return false
	}
	if c.Priority != "" && t.Priority != c.Priority {
		return false
	}
	if c.Search != "" {
		return matchesSearch(t, strings.ToLower(c.Search))
	}
	switch c.Type {
	case model.FilterActive:
		return !t.Completed
	case model.FilterCompleted:
		return t.Completed
	case model.FilterOverdue:
		return t.IsOverdue(now)
	default:
		return true
	}
}

func matchesSearch(t model.Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	if t.Description != "" && strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Sort orders tasks in place. Desc negates the comparison, so ties keep their
// input order in both directions.
func Sort(tasks []model.Task, by model.SortType, order model.SortOrder) {
	cmp := comparator(by)
	if cmp == nil {
		return
	}
	sign := 1
	if order == model.SortDesc {
		sign = -1
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return sign*cmp(tasks[i], tasks[j]) < 0
	})
}

func comparator(by model.SortType) func(a, b model.Task) int {
	switch by {
	case model.SortDueDate:
		return compareDue
	case model.SortPriority:
		return func(a, b model.Task) int {
			return a.Priority.Weight() - b.Priority.Weight()
		}
	case model.SortCreated:
		return func(a, b model.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case model.SortTitle:
		col := collate.New(language.Und, collate.IgnoreCase)
		return func(a, b model.Task) int {
			return col.CompareString(a.Title, b.Title)
		}
	default:
		return nil
	}
}

// compareDue puts undated tasks after dated ones.
func compareDue(a, b model.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	default:
		return a.DueDate.Compare(*b.DueDate)
	}
}
