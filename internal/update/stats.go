package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/board"
)

func (m Model) suggestions() []board.Suggestion {
	if !m.board.Preferences().SmartSuggestions {
		return nil
	}
	return m.board.Suggestions(m.Dismissed)
}

func (m Model) handleStatsKey(msg tea.KeyMsg) Model {
	suggestions := m.suggestions()
	switch msg.String() {
	case "j", "down":
		if m.SuggestionCursor < len(suggestions)-1 {
			m.SuggestionCursor++
		}
	case "k", "up":
		if m.SuggestionCursor > 0 {
			m.SuggestionCursor--
		}
	case "enter":
		sg, ok := m.currentSuggestion(suggestions)
		if !ok {
			return m
		}
		m.Dismissed[sg.ID] = true
		if sg.TaskTitle == "" {
			m.Status = StatusBar{Text: fmt.Sprintf("noted: %s", sg.Title), IsError: false}
			break
		}
		t, err := m.board.AddTaskFromSuggestion(m.ctx, sg.TaskTitle)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("added task: %s", t.Title), IsError: false}
	case "d":
		if sg, ok := m.currentSuggestion(suggestions); ok {
			m.Dismissed[sg.ID] = true
			m.Status = StatusBar{Text: fmt.Sprintf("dismissed: %s", sg.Title), IsError: false}
		}
	}
	if n := len(m.suggestions()); m.SuggestionCursor >= n && n > 0 {
		m.SuggestionCursor = n - 1
	}
	return m
}

func (m Model) currentSuggestion(suggestions []board.Suggestion) (board.Suggestion, bool) {
	if m.SuggestionCursor < 0 || m.SuggestionCursor >= len(suggestions) {
		return board.Suggestion{}, false
	}
	return suggestions[m.SuggestionCursor], true
}
