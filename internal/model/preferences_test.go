package model

import (
	"errors"
	"testing"
)

func TestPreferencesSet(t *testing.T) {
	p := DefaultPreferences()
	cases := []struct {
		key, value string
		check      func(Preferences) bool
	}{
		{"theme", "Dark", func(p Preferences) bool { return p.Theme == ThemeDark }},
		{"pomodorolength", "50", func(p Preferences) bool { return p.PomodoroLength == 50 }},
		{"shortBreakLength", "10", func(p Preferences) bool { return p.ShortBreakLength == 10 }},
		{"notifications", "off", func(p Preferences) bool { return !p.Notifications }},
		{"celebrations", "false", func(p Preferences) bool { return !p.Celebrations }},
		{"reducedMotion", "on", func(p Preferences) bool { return p.ReducedMotion }},
		{"sortBy", "title", func(p Preferences) bool { return p.SortBy == SortTitle }},
		{"sortOrder", "desc", func(p Preferences) bool { return p.SortOrder == SortDesc }},
		{"defaultCategory", "Work", func(p Preferences) bool { return p.DefaultCategory == "work" }},
	}
	for _, tc := range cases {
		if err := p.Set(tc.key, tc.value); err != nil {
			t.Fatalf("set %s=%s: %v", tc.key, tc.value, err)
		}
		if !tc.check(p) {
			t.Fatalf("set %s=%s not applied: %+v", tc.key, tc.value, p)
		}
	}
	if got, err := p.Get("POMODOROLENGTH"); err != nil || got != "50" {
		t.Fatalf("get pomodoroLength: %q %v", got, err)
	}
	if got, _ := p.Get("notifications"); got != "false" {
		t.Fatalf("get notifications: %q", got)
	}
}

func TestPreferencesSetRejects(t *testing.T) {
	cases := []struct {
		key, value string
		want       error
	}{
		{"volume", "11", ErrUnknownPreference},
		{"theme", "neon", ErrInvalidTheme},
		{"pomodoroLength", "0", ErrInvalidPreference},
		{"longBreakLength", "soon", ErrInvalidPreference},
		{"smartSuggestions", "maybe", ErrInvalidPreference},
		{"sortBy", "color", ErrInvalidSortType},
		{"defaultCategory", " ", ErrInvalidPreference},
	}
	for _, tc := range cases {
		p := DefaultPreferences()
		err := p.Set(tc.key, tc.value)
		if !errors.Is(err, tc.want) {
			t.Fatalf("set %s=%q: expected %v, got %v", tc.key, tc.value, tc.want, err)
		}
		if p != DefaultPreferences() {
			t.Fatalf("set %s=%q must leave preferences unchanged", tc.key, tc.value)
		}
	}
}

func TestCategoryColor(t *testing.T) {
	for _, c := range []string{"", "#fff", "#10B981"} {
		if err := (Category{Name: "Errands", Color: c}).Validate(); err != nil {
			t.Fatalf("color %q: %v", c, err)
		}
	}
	for _, c := range []string{"red", "#12345", "#ggg"} {
		if err := (Category{Name: "Errands", Color: c}).Validate(); !errors.Is(err, ErrInvalidColor) {
			t.Fatalf("color %q: expected ErrInvalidColor, got %v", c, err)
		}
	}
}
