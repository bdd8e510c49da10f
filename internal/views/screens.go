package views

import (
	"fmt"
	"strings"
)

type TaskPanelData struct {
	FilterLabel    string
	SortLabel      string
	Search         string
	ShowCompleted  bool
	SelectionCount int
	InputLabel     string
	InputView      string
	TableView      string
	Empty          bool
	Confirm        string
}

type TaskDetailData struct {
	Title         string
	Priority      string
	Category      string
	CategoryColor string
	Due           string
	Overdue       bool
	Tags          []string
	Estimate      int
	Actual        int
	Subtasks      []SubtaskLine
	Recurrence    string
	NotesView     string
	Editing       bool
}

type SubtaskLine struct {
	Title     string
	Completed bool
}

type TemplatesPanelData struct {
	ListView string
	Count    int
	Confirm  string
}

type FocusPanelData struct {
	TaskTitle          string
	Phase              string
	Status             string
	Timer              string
	ProgressView       string
	ProgressPct        int
	CompletedPomodoros int
	SessionsLogged     int
}

type StatsPanelData struct {
	Total          int
	Completed      int
	Active         int
	DueToday       int
	Overdue        int
	CompletionRate int
	RateView       string
	Suggestions    []SuggestionData
	Cursor         int
	Enabled        bool
}

type SuggestionData struct {
	Kind        string
	Title       string
	Description string
	Actionable  bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(fmt.Sprintf("filter: %s | sort: %s", data.FilterLabel, data.SortLabel))
	if data.Search != "" {
		b.WriteString(fmt.Sprintf(" | search: %q", data.Search))
	}
	if data.ShowCompleted {
		b.WriteString(" | +completed")
	}
	if data.SelectionCount > 0 {
		b.WriteString(fmt.Sprintf(" | %d selected", data.SelectionCount))
	}
	b.WriteString("\n")
	if data.InputView != "" {
		b.WriteString(data.InputLabel + " " + data.InputView + "\n")
	}
	b.WriteString("actions: [ctrl+n]add [x]done [space]select [ctrl+a]all [D]delete [f]filter [s]sort [o]order [h]completed\n")
	if data.Empty {
		b.WriteString("\n(no tasks match)")
	} else {
		b.WriteString(data.TableView)
	}
	if data.Confirm != "" {
		b.WriteString("\n" + RenderConfirm(data.Confirm))
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(data TaskDetailData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(headerStyle.Render(data.Title) + "\n")
	b.WriteString(fmt.Sprintf("priority: %s\n", priorityBadge(data.Priority)))
	b.WriteString(fmt.Sprintf("category: %s %s\n", Swatch(data.CategoryColor), data.Category))
	if data.Due != "" {
		due := data.Due
		if data.Overdue {
			due = errorStyle.Render(due + " (overdue)")
		}
		b.WriteString("due: " + due + "\n")
	}
	if len(data.Tags) > 0 {
		b.WriteString("tags: #" + strings.Join(data.Tags, " #") + "\n")
	}
	if data.Estimate > 0 || data.Actual > 0 {
		b.WriteString(fmt.Sprintf("time: %dm spent / %dm estimated\n", data.Actual, data.Estimate))
	}
	if data.Recurrence != "" {
		b.WriteString("repeats: " + data.Recurrence + "\n")
	}
	if len(data.Subtasks) > 0 {
		b.WriteString("subtasks:\n")
		for _, st := range data.Subtasks {
			mark := "[ ]"
			if st.Completed {
				mark = "[x]"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", mark, st.Title))
		}
	}
	if data.Editing {
		b.WriteString("\nnotes (ctrl+s save, esc cancel):\n")
	} else {
		b.WriteString("\nnotes ([e]dit):\n")
	}
	if data.NotesView == "" {
		b.WriteString(mutedStyle.Render("(empty)"))
	} else {
		b.WriteString(data.NotesView)
	}
	return strings.TrimSpace(b.String())
}

func RenderTemplatesPanel(data TemplatesPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("templates: (%d)\n", data.Count))
	b.WriteString("actions: [enter]create task [c]duplicate [D]delete\n")
	if data.Count == 0 {
		b.WriteString("\n(no templates yet, press [t] on a task to save one)")
	} else {
		b.WriteString(data.ListView)
	}
	if data.Confirm != "" {
		b.WriteString("\n" + RenderConfirm(data.Confirm))
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s (%s)\n", strings.ToUpper(data.Phase), data.Status))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("pomodoros completed: %d\n", data.CompletedPomodoros))
	b.WriteString(fmt.Sprintf("sessions logged: %d\n", data.SessionsLogged))
	b.WriteString("actions: [space]start/pause [s]stop [r]reset [w]work [b]short break [l]long break")
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("total: %d | active: %d | completed: %d\n", data.Total, data.Active, data.Completed))
	b.WriteString(fmt.Sprintf("due today: %d | overdue: %d\n", data.DueToday, data.Overdue))
	b.WriteString(fmt.Sprintf("completion: %s %d%%\n", data.RateView, data.CompletionRate))
	if !data.Enabled {
		return strings.TrimSpace(b.String())
	}
	b.WriteString("\nsuggestions: [enter]accept [d]ismiss\n")
	if len(data.Suggestions) == 0 {
		b.WriteString("  (nothing to suggest)")
		return strings.TrimSpace(b.String())
	}
	for i, sg := range data.Suggestions {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		action := ""
		if sg.Actionable {
			action = " [+task]"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s%s\n", cursor, strings.ToUpper(sg.Kind), sg.Title, action))
		b.WriteString("    " + mutedStyle.Render(sg.Description) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderConfirm(prompt string) string {
	return warnStyle.Render(prompt + " [y/n]")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func priorityBadge(p string) string {
	switch p {
	case "high":
		return errorStyle.Render("[HIGH]")
	case "medium":
		return warnStyle.Render("[MEDIUM]")
	default:
		return statusStyle.Render("[" + strings.ToUpper(p) + "]")
	}
}
