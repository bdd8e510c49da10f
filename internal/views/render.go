package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

func RenderApp(data AppData) string {
	left := panelStyle.Width(72).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := panelStyle.Width(52).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders task notes for the terminal, returning md untouched
// when glamour fails.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width <= 0 {
		width = 48
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Swatch renders a small block in a category's display color.
func Swatch(hex string) string {
	if hex == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
