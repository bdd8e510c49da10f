package views

import (
	"strings"
	"testing"
)

func TestRenderTaskPanelShowsCriteriaAndEmptyState(t *testing.T) {
	out := RenderTaskPanel(TaskPanelData{
		FilterLabel:    "overdue",
		SortLabel:      "dueDate asc",
		Search:         "report",
		SelectionCount: 2,
		Empty:          true,
	})
	for _, want := range []string{"filter: overdue", "sort: dueDate asc", `search: "report"`, "2 selected", "(no tasks match)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in panel:\n%s", want, out)
		}
	}
}

func TestRenderTaskDetailWithoutSelection(t *testing.T) {
	if out := RenderTaskDetail(TaskDetailData{}); !strings.Contains(out, "(no selection)") {
		t.Fatalf("unexpected detail output: %s", out)
	}
}

func TestRenderTaskDetailListsSubtasks(t *testing.T) {
	out := RenderTaskDetail(TaskDetailData{
		Title:    "Ship release",
		Priority: "high",
		Category: "Work",
		Subtasks: []SubtaskLine{{Title: "tag build", Completed: true}, {Title: "announce"}},
	})
	if !strings.Contains(out, "[x] tag build") || !strings.Contains(out, "[ ] announce") {
		t.Fatalf("subtasks missing:\n%s", out)
	}
}

func TestRenderStatsPanelHidesSuggestionsWhenDisabled(t *testing.T) {
	data := StatsPanelData{Total: 3, Suggestions: []SuggestionData{{Kind: "tip", Title: "Take a break"}}}
	if strings.Contains(RenderStatsPanel(data), "Take a break") {
		t.Fatalf("suggestions rendered while disabled")
	}
	data.Enabled = true
	if !strings.Contains(RenderStatsPanel(data), "> [TIP] Take a break") {
		t.Fatalf("suggestion missing:\n%s", RenderStatsPanel(data))
	}
}

func TestRenderCommandPaletteInactive(t *testing.T) {
	if RenderCommandPalette(false, "add x") != "" {
		t.Fatalf("inactive palette should render nothing")
	}
	if got := RenderCommandPalette(true, "add x"); got != "command: /add x" {
		t.Fatalf("unexpected palette: %q", got)
	}
}
