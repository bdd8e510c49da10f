package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidTheme      = errors.New("model: invalid theme")
	ErrUnknownPreference = errors.New("model: unknown preference")
	ErrInvalidPreference = errors.New("model: invalid preference value")
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return t, nil
}

type Preferences struct {
	Theme            Theme     `json:"theme"`
	DefaultCategory  string    `json:"defaultCategory"`
	SortBy           SortType  `json:"sortBy"`
	SortOrder        SortOrder `json:"sortOrder"`
	Notifications    bool      `json:"notifications"`
	SoundEnabled     bool      `json:"soundEnabled"`
	PomodoroLength   int       `json:"pomodoroLength"`
	ShortBreakLength int       `json:"shortBreakLength"`
	LongBreakLength  int       `json:"longBreakLength"`
	AudioFeedback    bool      `json:"audioFeedback"`
	HapticFeedback   bool      `json:"hapticFeedback"`
	Animations       bool      `json:"animations"`
	Tooltips         bool      `json:"tooltips"`
	Celebrations     bool      `json:"celebrations"`
	SmartSuggestions bool      `json:"smartSuggestions"`
	ReducedMotion    bool      `json:"reducedMotion"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:            ThemeSystem,
		DefaultCategory:  "personal",
		SortBy:           SortDueDate,
		SortOrder:        SortAsc,
		Notifications:    true,
		SoundEnabled:     true,
		PomodoroLength:   25,
		ShortBreakLength: 5,
		LongBreakLength:  15,
		AudioFeedback:    true,
		HapticFeedback:   true,
		Animations:       true,
		Tooltips:         true,
		Celebrations:     true,
		SmartSuggestions: true,
		ReducedMotion:    false,
	}
}

// SessionMinutes returns the configured length for a session type, falling
// back to the defaults for non-positive values.
func (p Preferences) SessionMinutes(t SessionType) int {
	def := DefaultPreferences()
	switch t {
	case SessionShortBreak:
		if p.ShortBreakLength > 0 {
			return p.ShortBreakLength
		}
		return def.ShortBreakLength
	case SessionLongBreak:
		if p.LongBreakLength > 0 {
			return p.LongBreakLength
		}
		return def.LongBreakLength
	default:
		if p.PomodoroLength > 0 {
			return p.PomodoroLength
		}
		return def.PomodoroLength
	}
}

// maxSessionMinutes caps the editable session lengths at one day.
const maxSessionMinutes = 24 * 60

// PreferenceKeys lists the editable preferences by their stored names.
var PreferenceKeys = []string{
	"theme", "defaultCategory", "sortBy", "sortOrder",
	"notifications", "soundEnabled",
	"pomodoroLength", "shortBreakLength", "longBreakLength",
	"audioFeedback", "hapticFeedback", "animations", "tooltips",
	"celebrations", "smartSuggestions", "reducedMotion",
}

// CanonicalPreferenceKey resolves a key case-insensitively.
func CanonicalPreferenceKey(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, k := range PreferenceKeys {
		if strings.EqualFold(k, raw) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreference, raw)
}

func (p Preferences) Get(key string) (string, error) {
	k, err := CanonicalPreferenceKey(key)
	if err != nil {
		return "", err
	}
	switch k {
	case "theme":
		return string(p.Theme), nil
	case "defaultCategory":
		return p.DefaultCategory, nil
	case "sortBy":
		return string(p.SortBy), nil
	case "sortOrder":
		return string(p.SortOrder), nil
	case "pomodoroLength":
		return strconv.Itoa(p.PomodoroLength), nil
	case "shortBreakLength":
		return strconv.Itoa(p.ShortBreakLength), nil
	case "longBreakLength":
		return strconv.Itoa(p.LongBreakLength), nil
	default:
		return strconv.FormatBool(*p.flag(k)), nil
	}
}

// Set parses value for key and stores it. The receiver is left unchanged on
// error. Whether a defaultCategory exists is the caller's concern.
func (p *Preferences) Set(key, value string) error {
	k, err := CanonicalPreferenceKey(key)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	switch k {
	case "theme":
		t, err := ParseTheme(value)
		if err != nil {
			return err
		}
		p.Theme = t
	case "defaultCategory":
		if value == "" {
			return fmt.Errorf("%w: defaultCategory must not be empty", ErrInvalidPreference)
		}
		p.DefaultCategory = strings.ToLower(value)
	case "sortBy":
		s, err := ParseSortType(value)
		if err != nil {
			return err
		}
		p.SortBy = s
	case "sortOrder":
		o, err := ParseSortOrder(value)
		if err != nil {
			return err
		}
		p.SortOrder = o
	case "pomodoroLength", "shortBreakLength", "longBreakLength":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > maxSessionMinutes {
			return fmt.Errorf("%w: %s must be 1-%d minutes, got %q", ErrInvalidPreference, k, maxSessionMinutes, value)
		}
		switch k {
		case "pomodoroLength":
			p.PomodoroLength = n
		case "shortBreakLength":
			p.ShortBreakLength = n
		default:
			p.LongBreakLength = n
		}
	default:
		b, err := parseSwitch(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects on or off, got %q", ErrInvalidPreference, k, value)
		}
		*p.flag(k) = b
	}
	return nil
}

func (p *Preferences) flag(key string) *bool {
	switch key {
	case "notifications":
		return &p.Notifications
	case "soundEnabled":
		return &p.SoundEnabled
	case "audioFeedback":
		return &p.AudioFeedback
	case "hapticFeedback":
		return &p.HapticFeedback
	case "animations":
		return &p.Animations
	case "tooltips":
		return &p.Tooltips
	case "celebrations":
		return &p.Celebrations
	case "smartSuggestions":
		return &p.SmartSuggestions
	default:
		return &p.ReducedMotion
	}
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(raw)
}
