package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.Scheduler != nil {
		cmds = append(cmds, waitForDueCmd(m.Scheduler.C()))
	}
	if m.ticker != nil {
		cmds = append(cmds, waitForRecurrenceCmd(m.ticker.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		if m.Palette.Active {
			if keyStr == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.Confirm != nil {
			return m.handleConfirmKey(typed), nil
		}
		if m.Input != InputNone {
			return m.handleInputKey(typed)
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Templates:
			m.CurrentView = ViewTemplates
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			m.bootstrapFocusTask()
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			m.timer.Stop()
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed)
		case ViewTemplates:
			return m.handleTemplatesKey(typed), nil
		case ViewFocus:
			return m.handleFocusKey(typed)
		case ViewStats:
			return m.handleStatsKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewFocus {
				m.bootstrapFocusTask()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case TaskDueMsg:
		m.onTaskDue(typed.Event)
		if m.Scheduler != nil {
			return m, waitForDueCmd(m.Scheduler.C())
		}
		return m, nil
	case RecurrenceTickMsg:
		m.onRecurrenceTick(typed.At)
		if m.ticker != nil {
			return m, waitForRecurrenceCmd(m.ticker.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetail()
	case ViewTemplates:
		leftPane = m.renderTemplatesView()
	case ViewFocus:
		leftPane = m.renderFocusView()
	case ViewStats:
		leftPane = m.renderStatsView()
	}
	extra := strings.TrimSpace(strings.Join([]string{m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n"))
	if extra != "" {
		rightPane = strings.TrimSpace(rightPane + "\n\n" + extra)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("focusboard | view: %s | selected: %s", m.CurrentView, m.selectedTitle()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s tasks | %s templates | %s focus | %s stats | / cmd | %s help | %s quit",
			m.Keys.Tasks, m.Keys.Templates, m.Keys.Focus, m.Keys.Stats, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) selectedTitle() string {
	if t, ok := m.board.Task(m.SelectedTaskID); ok {
		return t.Title
	}
	return "-"
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewTemplates, ViewFocus, ViewStats:
		return true
	default:
		return false
	}
}

func waitForRecurrenceCmd(ch <-chan time.Time) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		at, ok := <-ch
		if !ok {
			return nil
		}
		return RecurrenceTickMsg{At: at}
	}
}
