package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/model"
)

func (m Model) handleTemplatesKey(msg tea.KeyMsg) Model {
	templates := m.board.Templates()
	switch msg.String() {
	case "j", "down":
		if m.TemplateCursor < len(templates)-1 {
			m.TemplateCursor++
		}
	case "k", "up":
		if m.TemplateCursor > 0 {
			m.TemplateCursor--
		}
	case "enter":
		tpl, ok := m.currentTemplate()
		if !ok {
			return m
		}
		t, err := m.board.CreateFromTemplate(m.ctx, tpl.ID)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.CurrentView = ViewTasks
		m.focusTask(t.ID)
		m.syncReminders()
		m.Status = StatusBar{Text: fmt.Sprintf("created from template: %s", t.Title), IsError: false}
	case "c":
		tpl, ok := m.currentTemplate()
		if !ok {
			return m
		}
		dup, err := m.board.DuplicateTemplate(m.ctx, tpl.ID)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("duplicated: %s", dup.Name), IsError: false}
	case "delete", "D":
		if tpl, ok := m.currentTemplate(); ok {
			m.Confirm = &Confirm{Prompt: fmt.Sprintf("delete template %q?", tpl.Name), Action: confirmDeleteTemplate, TargetID: tpl.ID}
		}
	}
	return m
}

func (m Model) currentTemplate() (model.TaskTemplate, bool) {
	templates := m.board.Templates()
	if m.TemplateCursor < 0 || m.TemplateCursor >= len(templates) {
		return model.TaskTemplate{}, false
	}
	return templates[m.TemplateCursor], true
}

// focusTask moves the task cursor onto id when it is visible.
func (m *Model) focusTask(id string) {
	for i, t := range m.visibleTasks() {
		if t.ID == id {
			m.Tasks.Cursor = i
			return
		}
	}
}
