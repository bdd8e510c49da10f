package update

import (
	"fmt"
	"time"
)

func (m *Model) onRecurrenceTick(at time.Time) {
	spawned := m.board.ApplyRecurrence(m.ctx)
	if len(spawned) == 0 {
		return
	}
	m.logger.Info("recurring tasks renewed", "count", len(spawned), "tick", at.Format(time.RFC3339))
	body := fmt.Sprintf("%d recurring task(s) renewed", len(spawned))
	if len(spawned) == 1 {
		body = fmt.Sprintf("recurring task renewed: %s", spawned[0].Task.Title)
	}
	m.Status = StatusBar{Text: body, IsError: false}
	m.notify("Recurring", body, "info")
	m.syncReminders()
}
