package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/focusboard/internal/commands"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) renderCommandPalette() string {
	out := views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
	if out == "" || strings.TrimSpace(m.Palette.Input) != "" {
		return out
	}
	verbs := make([]string, 0, len(commands.Names))
	for _, n := range commands.Names {
		verbs = append(verbs, string(n))
	}
	return out + "\nverbs: " + strings.Join(verbs, ", ")
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) confirmPrompt() string {
	if m.Confirm == nil {
		return ""
	}
	return m.Confirm.Prompt
}

func (m Model) renderTasksView() string {
	label := ""
	inputView := ""
	switch m.Input {
	case InputQuickAdd:
		label, inputView = "new task:", m.quickAddInput.View()
	case InputSubtask:
		label, inputView = "subtask:", m.quickAddInput.View()
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		FilterLabel:    m.filterLabel(),
		SortLabel:      string(m.Tasks.Criteria.Sort) + " " + string(m.Tasks.Criteria.Order),
		Search:         m.Tasks.Criteria.Search,
		ShowCompleted:  m.Tasks.ShowCompleted,
		SelectionCount: m.board.SelectionCount(),
		InputLabel:     label,
		InputView:      inputView,
		TableView:      m.taskTable.View(),
		Empty:          len(m.taskTable.Rows()) == 0,
		Confirm:        m.confirmPrompt(),
	})
}

func (m Model) filterLabel() string {
	parts := []string{string(m.Tasks.Criteria.Type)}
	if m.Tasks.Criteria.Category != "" {
		parts = append(parts, "@"+m.Tasks.Criteria.Category)
	}
	if m.Tasks.Criteria.Priority != "" {
		parts = append(parts, "!"+string(m.Tasks.Criteria.Priority))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTaskDetail() string {
	t, ok := m.board.Task(m.SelectedTaskID)
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	category := m.board.CategoryByID(t.Category)
	subtasks := make([]views.SubtaskLine, 0, len(t.Subtasks))
	for _, st := range t.Subtasks {
		subtasks = append(subtasks, views.SubtaskLine{Title: st.Title, Completed: st.Completed})
	}
	data := views.TaskDetailData{
		Title:         t.Title,
		Priority:      string(t.Priority),
		Category:      strings.TrimSpace(category.Icon + " " + category.Name),
		CategoryColor: category.Color,
		Overdue:       t.IsOverdue(m.board.Now()),
		Tags:          t.Tags,
		Estimate:      minutesOf(t.Estimate),
		Actual:        minutesOf(t.ActualTime),
		Subtasks:      subtasks,
		Recurrence:    describeRecurrence(t.Recurrence),
		NotesView:     m.notesViewport.View(),
		Editing:       m.Input == InputNotes,
	}
	if t.DueDate != nil {
		data.Due = t.DueDate.In(time.Local).Format("Mon 2006-01-02 15:04")
	}
	if data.Editing {
		data.NotesView = m.notesArea.View()
	} else if strings.TrimSpace(t.Notes) == "" {
		data.NotesView = ""
	}
	return views.RenderTaskDetail(data)
}

func (m Model) renderTemplatesView() string {
	return views.RenderTemplatesPanel(views.TemplatesPanelData{
		ListView: m.templateList.View(),
		Count:    len(m.board.Templates()),
		Confirm:  m.confirmPrompt(),
	})
}

func (m Model) renderFocusView() string {
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:          m.focusTaskTitle(),
		Phase:              string(m.timer.Type()),
		Status:             string(m.timer.Status()),
		Timer:              formatDuration(m.timer.Remaining()),
		ProgressView:       m.focusProgress.ViewAs(m.timer.Progress()),
		ProgressPct:        int(m.timer.Progress() * 100),
		CompletedPomodoros: m.timer.CompletedWork(),
		SessionsLogged:     m.SessionsLogged,
	})
}

func (m Model) renderStatsView() string {
	s := m.board.Stats()
	prefs := m.board.Preferences()
	suggestions := make([]views.SuggestionData, 0)
	for _, sg := range m.suggestions() {
		suggestions = append(suggestions, views.SuggestionData{
			Kind:        string(sg.Kind),
			Title:       sg.Title,
			Description: sg.Description,
			Actionable:  sg.TaskTitle != "",
		})
	}
	return views.RenderStatsPanel(views.StatsPanelData{
		Total:          s.Total,
		Completed:      s.Completed,
		Active:         s.Active,
		DueToday:       s.DueToday,
		Overdue:        s.Overdue,
		CompletionRate: s.CompletionRate,
		RateView:       m.rateProgress.ViewAs(float64(s.CompletionRate) / 100),
		Suggestions:    suggestions,
		Cursor:         m.SuggestionCursor,
		Enabled:        prefs.SmartSuggestions,
	})
}

// notify records an in-app notification. Only alerts and errors reach the
// desktop notifier.
func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if level == "info" || !m.DesktopEnabled || m.notifier == nil {
		return
	}
	if err := m.notifier.Send(n); err != nil {
		m.logger.Warn("desktop notification failed", "err", err)
	}
}
