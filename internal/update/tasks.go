package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/board"
	"github.com/sandeepkv93/focusboard/internal/commands"
	"github.com/sandeepkv93/focusboard/internal/model"
)

var priorityCycle = []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveTaskCursor(1)
	case "k", "up":
		m.moveTaskCursor(-1)
	case "ctrl+n":
		m.openInput(InputQuickAdd, "title #tag @category !priority due:YYYY-MM-DD")
		m.Status = StatusBar{Text: "new task", IsError: false}
	case "ctrl+a":
		ids := m.visibleIDs()
		m.board.SelectAll(ids)
		m.Status = StatusBar{Text: fmt.Sprintf("%d task(s) selected", m.board.SelectionCount()), IsError: false}
	case "esc":
		switch {
		case m.board.SelectionCount() > 0:
			m.board.ClearSelection()
			m.Status = StatusBar{Text: "selection cleared", IsError: false}
		case m.Tasks.Criteria.Search != "":
			m.Tasks.Criteria.Search = ""
			m.Status = StatusBar{Text: "search cleared", IsError: false}
		}
	case "delete", "D":
		if n := m.board.SelectionCount(); n > 0 {
			m.Confirm = &Confirm{Prompt: fmt.Sprintf("delete %d selected task(s)?", n), Action: confirmBulkDelete}
			return m, nil
		}
		if t, ok := m.currentTask(); ok {
			m.Confirm = &Confirm{Prompt: fmt.Sprintf("delete %q?", t.Title), Action: confirmDeleteTask, TargetID: t.ID}
		}
	case "C":
		if m.board.SelectionCount() == 0 {
			m.Status = StatusBar{Text: "nothing selected", IsError: true}
			return m, nil
		}
		ids := m.board.Selected()
		n := m.board.BulkComplete(m.ctx)
		m.Status = StatusBar{Text: fmt.Sprintf("completed %d task(s)", n), IsError: false}
		m.dropReminders(ids...)
	case " ":
		if t, ok := m.currentTask(); ok {
			m.board.ToggleSelected(t.ID)
		}
	case "x":
		t, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		celebration, err := m.board.ToggleTask(m.ctx, t.ID)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.celebrate(t, celebration)
		if t.Completed {
			// reopened: it may need a reminder again
			m.syncReminders()
		} else {
			m.dropReminders(t.ID)
		}
	case "h":
		m.Tasks.ShowCompleted = !m.Tasks.ShowCompleted
		if m.Tasks.ShowCompleted {
			m.Status = StatusBar{Text: "showing completed tasks", IsError: false}
		} else {
			m.Status = StatusBar{Text: "hiding completed tasks", IsError: false}
		}
	case "f":
		m.Tasks.Criteria.Type = m.Tasks.Criteria.Type.Next()
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.Tasks.Criteria.Type), IsError: false}
	case "s":
		m.Tasks.Criteria.Sort = m.Tasks.Criteria.Sort.Next()
		m.persistSort()
	case "o":
		m.Tasks.Criteria.Order = m.Tasks.Criteria.Order.Flip()
		m.persistSort()
	case "p":
		m.cyclePriority()
	case "e":
		if _, ok := m.currentTask(); ok {
			m.openInput(InputNotes, "")
		}
	case "a":
		if _, ok := m.currentTask(); ok {
			m.openInput(InputSubtask, "subtask title")
		}
	case "u":
		m.toggleNextSubtask()
	case "t":
		t, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		tpl, err := m.board.SaveTaskAsTemplate(m.ctx, t.ID, t.Title)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("saved template: %s", tpl.Name), IsError: false}
	case "F":
		if t, ok := m.currentTask(); ok {
			m.timer.SetTask(t.ID)
			m.CurrentView = ViewFocus
			m.Status = StatusBar{Text: fmt.Sprintf("focusing on: %s", t.Title), IsError: false}
		}
	}
	return m, nil
}

func (m *Model) moveTaskCursor(delta int) {
	n := len(m.visibleTasks())
	if n == 0 {
		m.Tasks.Cursor = 0
		return
	}
	m.Tasks.Cursor += delta
	if m.Tasks.Cursor < 0 {
		m.Tasks.Cursor = 0
	}
	if m.Tasks.Cursor >= n {
		m.Tasks.Cursor = n - 1
	}
}

func (m Model) currentTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return model.Task{}, false
	}
	i := m.Tasks.Cursor
	if i < 0 || i >= len(visible) {
		return model.Task{}, false
	}
	return visible[i], true
}

func (m *Model) persistSort() {
	prefs := m.board.Preferences()
	prefs.SortBy = m.Tasks.Criteria.Sort
	prefs.SortOrder = m.Tasks.Criteria.Order
	m.board.SetPreferences(m.ctx, prefs)
	m.Status = StatusBar{Text: fmt.Sprintf("sort: %s %s", m.Tasks.Criteria.Sort, m.Tasks.Criteria.Order), IsError: false}
}

func (m *Model) cyclePriority() {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	next := priorityCycle[0]
	for i, p := range priorityCycle {
		if p == t.Priority {
			next = priorityCycle[(i+1)%len(priorityCycle)]
		}
	}
	if _, err := m.board.UpdateTask(m.ctx, t.ID, func(task *model.Task) { task.Priority = next }); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("priority: %s", next), IsError: false}
}

func (m *Model) toggleNextSubtask() {
	t, ok := m.currentTask()
	if !ok || len(t.Subtasks) == 0 {
		return
	}
	target := t.Subtasks[len(t.Subtasks)-1]
	for _, st := range t.Subtasks {
		if !st.Completed {
			target = st
			break
		}
	}
	if err := m.board.ToggleSubtask(m.ctx, t.ID, target.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("subtask toggled: %s", target.Title), IsError: false}
}

func (m *Model) celebrate(t model.Task, c board.Celebration) {
	m.LastCelebration = c
	switch c {
	case board.CelebrationMilestone:
		m.Status = StatusBar{Text: fmt.Sprintf("milestone! %d tasks completed", m.board.Stats().Completed), IsError: false}
	case board.CelebrationStreak:
		m.Status = StatusBar{Text: fmt.Sprintf("on a streak! %d tasks completed", m.board.Stats().Completed), IsError: false}
	case board.CelebrationTask:
		m.Status = StatusBar{Text: fmt.Sprintf("nice work: %s", t.Title), IsError: false}
	default:
		if t.Completed {
			m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", t.Title), IsError: false}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", t.Title), IsError: false}
		}
	}
}

func (m *Model) openInput(mode InputMode, placeholder string) {
	m.Input = mode
	if mode == InputNotes {
		t, _ := m.currentTask()
		m.notesArea.SetValue(t.Notes)
		m.notesArea.Focus()
		return
	}
	m.quickAddInput.Placeholder = placeholder
	m.quickAddInput.SetValue("")
	m.quickAddInput.Focus()
}

func (m *Model) closeInput() {
	m.Input = InputNone
	m.quickAddInput.SetValue("")
	m.quickAddInput.Blur()
	m.notesArea.Blur()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.closeInput()
		m.Status = StatusBar{Text: "input closed", IsError: false}
		return m, nil
	}

	if m.Input == InputNotes {
		if msg.String() == "ctrl+s" {
			m.saveNotes()
			return m, nil
		}
		var cmd tea.Cmd
		m.notesArea, cmd = m.notesArea.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.quickAddInput.Value())
		mode := m.Input
		m.closeInput()
		if value == "" {
			return m, nil
		}
		if mode == InputSubtask {
			m.addSubtask(value)
		} else {
			m.submitQuickAdd(value)
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
		return m, nil
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

func (m *Model) submitQuickAdd(raw string) {
	cmd, err := commands.Parse("add " + raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	res, err := m.addFromArgs(*cmd.Add)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
}

func (m *Model) addFromArgs(a commands.AddArgs) (commands.Result, error) {
	category := a.Category
	if category == "" {
		category = m.board.Preferences().DefaultCategory
	}
	t, err := m.board.AddTask(m.ctx, model.Task{
		Title:    a.Title,
		Priority: a.Priority,
		Category: category,
		Tags:     a.Tags,
		DueDate:  a.Due,
	})
	if err != nil {
		return commands.Result{}, err
	}
	m.syncReminders()
	return commands.Result{Message: fmt.Sprintf("added task: %s", t.Title)}, nil
}

func (m *Model) addSubtask(title string) {
	t, ok := m.currentTask()
	if !ok {
		return
	}
	if _, err := m.board.AddSubtask(m.ctx, t.ID, title); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("subtask added to %s", t.Title), IsError: false}
}

func (m *Model) saveNotes() {
	notes := m.notesArea.Value()
	m.closeInput()
	t, ok := m.currentTask()
	if !ok {
		return
	}
	if _, err := m.board.UpdateTask(m.ctx, t.ID, func(task *model.Task) { task.Notes = notes }); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: "notes saved", IsError: false}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	c := *m.Confirm
	m.Confirm = nil
	if key := msg.String(); key != "y" && key != "Y" {
		m.Status = StatusBar{Text: "cancelled", IsError: false}
		return m
	}

	switch c.Action {
	case confirmDeleteTask:
		if err := m.board.DeleteTask(m.ctx, c.TargetID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "task deleted", IsError: false}
		m.dropReminders(c.TargetID)
	case confirmBulkDelete:
		ids := m.board.Selected()
		n := m.board.BulkDelete(m.ctx)
		m.Status = StatusBar{Text: fmt.Sprintf("deleted %d task(s)", n), IsError: false}
		m.dropReminders(ids...)
	case confirmDeleteTemplate:
		if err := m.board.DeleteTemplate(m.ctx, c.TargetID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "template deleted", IsError: false}
	}
	return m
}
