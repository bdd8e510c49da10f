package model

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyTemplateName = errors.New("model: template name is required")

type TemplateSubtask struct {
	Title string `json:"title"`
}

// TaskTemplate is a stamp for new tasks. Tasks created from it keep no
// reference back to the template.
type TaskTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Priority    Priority          `json:"priority"`
	Category    string            `json:"category"`
	Tags        []string          `json:"tags"`
	Estimate    *int              `json:"estimate,omitempty"`
	Subtasks    []TemplateSubtask `json:"subtasks,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func (t TaskTemplate) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTemplateName
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if t.Estimate != nil && *t.Estimate < 0 {
		return ErrNegativeMinutes
	}
	return nil
}
