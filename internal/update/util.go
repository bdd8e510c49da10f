package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/views"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func formatDuration(d time.Duration) string {
	totalSec := int(d / time.Second)
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

func formatDue(t model.Task, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	out := t.DueDate.In(time.Local).Format("2006-01-02 15:04")
	if t.IsOverdue(now) {
		out = "!" + out
	}
	return out
}

func taskMarker(t model.Task, selected bool) string {
	sel := " "
	if selected {
		sel = "*"
	}
	done := " "
	if t.Completed {
		done = "x"
	}
	return sel + done
}

func describeRecurrence(r *model.Recurrence) string {
	if r == nil {
		return ""
	}
	out := fmt.Sprintf("%s, every %d day(s)", r.Type, r.Interval)
	if r.EndDate != nil {
		out += " until " + r.EndDate.In(time.Local).Format("2006-01-02")
	}
	return out
}

func renderNotes(md string) string {
	return views.RenderMarkdown(md, 46)
}

func minutesOf(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
