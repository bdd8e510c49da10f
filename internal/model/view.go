package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFilterType = errors.New("model: invalid filter type")
	ErrInvalidSortType   = errors.New("model: invalid sort type")
	ErrInvalidSortOrder  = errors.New("model: invalid sort order")
)

type FilterType string

const (
	FilterAll       FilterType = "all"
	FilterActive    FilterType = "active"
	FilterCompleted FilterType = "completed"
	FilterOverdue   FilterType = "overdue"
)

var filterCycle = []FilterType{FilterAll, FilterActive, FilterCompleted, FilterOverdue}

func (f FilterType) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted, FilterOverdue:
		return true
	default:
		return false
	}
}

func (f FilterType) Next() FilterType {
	return cycle(filterCycle, f)
}

func ParseFilterType(raw string) (FilterType, error) {
	f := FilterType(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilterType, raw)
	}
	return f, nil
}

type SortType string

const (
	SortDueDate  SortType = "dueDate"
	SortPriority SortType = "priority"
	SortCreated  SortType = "created"
	SortTitle    SortType = "title"
)

var sortCycle = []SortType{SortDueDate, SortPriority, SortCreated, SortTitle}

func (s SortType) IsValid() bool {
	switch s {
	case SortDueDate, SortPriority, SortCreated, SortTitle:
		return true
	default:
		return false
	}
}

func (s SortType) Next() SortType {
	return cycle(sortCycle, s)
}

// ParseSortType accepts the canonical names case-insensitively.
func ParseSortType(raw string) (SortType, error) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range sortCycle {
		if strings.EqualFold(string(s), trimmed) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortType, raw)
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

func (o SortOrder) Flip() SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}

func ParseSortOrder(raw string) (SortOrder, error) {
	o := SortOrder(strings.ToLower(strings.TrimSpace(raw)))
	if !o.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, raw)
	}
	return o, nil
}

func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
