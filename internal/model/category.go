package model

import (
	"errors"
	"fmt"
	"strings"
)

// UncategorizedID is never stored; CategoryByID lookups fall back to it when a
// task references a category that no longer exists.
const UncategorizedID = ""

var (
	ErrEmptyCategoryName = errors.New("model: category name is required")
	ErrInvalidColor      = errors.New("model: invalid category color")
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	if c.Color != "" && !IsHexColor(c.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c.Color)
	}
	return nil
}

// IsHexColor accepts #rgb and #rrggbb.
func IsHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func Uncategorized() Category {
	return Category{ID: UncategorizedID, Name: "No category", Color: "#6b7280"}
}

func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#3b82f6", Icon: "💼"},
		{ID: "personal", Name: "Personal", Color: "#10b981", Icon: "🏠"},
		{ID: "shopping", Name: "Shopping", Color: "#f59e0b", Icon: "🛒"},
		{ID: "health", Name: "Health", Color: "#ef4444", Icon: "🏥"},
		{ID: "learning", Name: "Learning", Color: "#8b5cf6", Icon: "📚"},
	}
}
