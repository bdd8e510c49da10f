package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/scheduler"
)

// syncReminders reschedules due reminders from the working set. With
// notifications turned off the engine is emptied instead.
func (m *Model) syncReminders() {
	if m.Scheduler == nil {
		return
	}
	tasks := m.board.Tasks()
	if !m.board.Preferences().Notifications {
		tasks = nil
	}
	n, err := m.Scheduler.Sync(tasks, m.board.Now())
	if err != nil {
		m.logger.Warn("reminder sync failed", "err", err)
		return
	}
	m.logger.Debug("reminders synced", "pending", n)
}

// dropReminders cancels pending reminders for tasks that were completed or
// deleted, leaving the rest of the queue alone.
func (m *Model) dropReminders(ids ...string) {
	if m.Scheduler == nil {
		return
	}
	removed := 0
	for _, id := range ids {
		removed += m.Scheduler.Cancel(id)
	}
	if removed > 0 {
		m.logger.Debug("reminders cancelled", "count", removed)
	}
}

func (m *Model) onTaskDue(ev scheduler.DueEvent) {
	t, ok := m.board.Task(ev.TaskID)
	if !ok || t.Completed {
		return
	}
	body := fmt.Sprintf("due now: %s", t.Title)
	m.Status = StatusBar{Text: body, IsError: false}
	m.notify("Task due", body, "alert")
}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return TaskDueMsg{Event: ev}
	}
}
