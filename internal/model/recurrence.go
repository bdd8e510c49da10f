package model

import (
	"errors"
	"fmt"
	"time"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

var (
	ErrInvalidRecurrenceType = errors.New("model: invalid recurrence type")
	ErrInvalidInterval       = errors.New("model: invalid recurrence interval")
	ErrInvalidWeekday        = errors.New("model: invalid recurrence weekday")
)

func (r RecurrenceType) IsValid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	default:
		return false
	}
}

// Recurrence spawns a successor task Interval days after the task was last
// updated while completed. DaysOfWeek uses 0=Sunday..6=Saturday.
type Recurrence struct {
	Type       RecurrenceType `json:"type"`
	Interval   int            `json:"interval"`
	EndDate    *time.Time     `json:"endDate,omitempty"`
	DaysOfWeek []int          `json:"daysOfWeek,omitempty"`
}

func (r Recurrence) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrenceType, r.Type)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, r.Interval)
	}
	seen := make(map[int]bool, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 || seen[d] {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
		}
		seen[d] = true
	}
	return nil
}

// Ended reports whether at is past the optional end date.
func (r Recurrence) Ended(at time.Time) bool {
	return r.EndDate != nil && at.After(*r.EndDate)
}

func (r Recurrence) Clone() Recurrence {
	out := r
	if r.EndDate != nil {
		end := *r.EndDate
		out.EndDate = &end
	}
	if r.DaysOfWeek != nil {
		out.DaysOfWeek = append([]int(nil), r.DaysOfWeek...)
	}
	return out
}
