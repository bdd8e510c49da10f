package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/pomodoro"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.timer.Status() == pomodoro.StatusRunning {
			m.timer.Pause()
			m.Status = StatusBar{Text: "focus paused", IsError: false}
			return m, nil
		}
		m.timer.SetPreferences(m.board.Preferences())
		m.timer.Start(m.board.Now())
		m.focusSeq++
		m.Status = StatusBar{Text: fmt.Sprintf("%s running", m.timer.Type()), IsError: false}
		return m, focusTickCmd(m.focusSeq)
	case "s":
		m.timer.Stop()
		m.Status = StatusBar{Text: "focus stopped", IsError: false}
	case "r":
		m.timer.Reset()
		m.Status = StatusBar{Text: "focus reset", IsError: false}
	case "w":
		m.switchSession(model.SessionWork)
	case "b":
		m.switchSession(model.SessionShortBreak)
	case "l":
		m.switchSession(model.SessionLongBreak)
	case "t":
		m.timer.SetTask(m.SelectedTaskID)
		m.Status = StatusBar{Text: fmt.Sprintf("focus task: %s", m.selectedTitle()), IsError: false}
	}
	return m, nil
}

func (m *Model) switchSession(st model.SessionType) {
	if err := m.timer.SwitchType(st); err != nil {
		if errors.Is(err, pomodoro.ErrSwitchWhileActive) {
			m.Status = StatusBar{Text: "stop the timer before switching", IsError: true}
			return
		}
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s ready", st), IsError: false}
}

func (m Model) onFocusTick(msg FocusTickMsg) (Model, tea.Cmd) {
	if msg.Seq != m.focusSeq || m.timer.Status() != pomodoro.StatusRunning {
		return m, nil
	}
	finished := m.timer.Type()
	if !m.timer.Tick(m.board.Now()) {
		return m, focusTickCmd(m.focusSeq)
	}
	m.SessionsLogged++
	body := fmt.Sprintf("%s session complete, %s is next", finished, m.timer.Type())
	m.Status = StatusBar{Text: body, IsError: false}
	m.notify("Pomodoro", body, "alert")
	return m, nil
}

// bootstrapFocusTask attaches the task under the cursor when the timer has
// none yet.
func (m *Model) bootstrapFocusTask() {
	if m.timer.TaskID() != "" || m.timer.Status() != pomodoro.StatusIdle {
		return
	}
	m.timer.SetTask(m.SelectedTaskID)
}

func (m Model) focusTaskTitle() string {
	if t, ok := m.board.Task(m.timer.TaskID()); ok {
		return t.Title
	}
	return ""
}

func focusTickCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{Seq: seq} })
}
