package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/focusboard/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Templates, Action: "switch to Templates"},
		{Key: m.Keys.Focus, Action: "switch to Focus"},
		{Key: m.Keys.Stats, Action: "switch to Stats"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "ctrl+n", Action: "new task"},
			{Key: "x", Action: "toggle completion"},
			{Key: "space", Action: "toggle select"},
			{Key: "ctrl+a/esc", Action: "select all visible / clear selection"},
			{Key: "C", Action: "complete selected"},
			{Key: "D/delete", Action: "delete selected or current"},
			{Key: "f/s/o", Action: "cycle filter / cycle sort / flip order"},
			{Key: "h", Action: "show or hide completed"},
			{Key: "p", Action: "cycle priority"},
			{Key: "e", Action: "edit notes"},
			{Key: "a/u", Action: "add subtask / toggle next subtask"},
			{Key: "t", Action: "save as template"},
			{Key: "F", Action: "focus on task"},
		}
	case ViewTemplates:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "create task from template"},
			{Key: "c", Action: "duplicate template"},
			{Key: "D/delete", Action: "delete template"},
		}
	case ViewFocus:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "s", Action: "stop without logging"},
			{Key: "r", Action: "reset timer and count"},
			{Key: "w/b/l", Action: "work / short break / long break"},
			{Key: "t", Action: "attach selected task"},
		}
	case ViewStats:
		return []KeyBinding{
			{Key: "j/k", Action: "move suggestion cursor"},
			{Key: "enter", Action: "accept suggestion"},
			{Key: "d", Action: "dismiss suggestion"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
