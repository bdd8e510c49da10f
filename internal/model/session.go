package model

import (
	"fmt"
	"time"
)

type SessionType string

const (
	SessionWork       SessionType = "work"
	SessionShortBreak SessionType = "short-break"
	SessionLongBreak  SessionType = "long-break"
)

func (s SessionType) IsValid() bool {
	switch s {
	case SessionWork, SessionShortBreak, SessionLongBreak:
		return true
	default:
		return false
	}
}

func ParseSessionType(raw string) (SessionType, error) {
	s := SessionType(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("model: invalid session type %q", raw)
	}
	return s, nil
}

// PomodoroSession is an append-only log entry. Only EndTime and Completed are
// set after creation.
type PomodoroSession struct {
	ID        string      `json:"id"`
	TaskID    string      `json:"taskId"`
	StartTime time.Time   `json:"startTime"`
	EndTime   *time.Time  `json:"endTime,omitempty"`
	Duration  int         `json:"duration"`
	Type      SessionType `json:"type"`
	Completed bool        `json:"completed"`
}
