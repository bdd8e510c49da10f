package update

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sandeepkv93/focusboard/internal/board"
	"github.com/sandeepkv93/focusboard/internal/filter"
	"github.com/sandeepkv93/focusboard/internal/model"
	"github.com/sandeepkv93/focusboard/internal/pomodoro"
	"github.com/sandeepkv93/focusboard/internal/recurrence"
	"github.com/sandeepkv93/focusboard/internal/scheduler"
)

type View string

const (
	ViewTasks     View = "Tasks"
	ViewTemplates View = "Templates"
	ViewFocus     View = "Focus"
	ViewStats     View = "Stats"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks     string
	Templates string
	Focus     string
	Stats     string
	Help      string
	Quit      string
}

// InputMode names the text field that currently owns the keyboard.
type InputMode string

const (
	InputNone     InputMode = ""
	InputQuickAdd InputMode = "add"
	InputSubtask  InputMode = "subtask"
	InputNotes    InputMode = "notes"
)

type confirmAction string

const (
	confirmDeleteTask     confirmAction = "delete-task"
	confirmBulkDelete     confirmAction = "bulk-delete"
	confirmDeleteTemplate confirmAction = "delete-template"
)

// Confirm is a pending destructive action waiting for y/n.
type Confirm struct {
	Prompt   string
	Action   confirmAction
	TargetID string
}

type TaskListState struct {
	Criteria      filter.Criteria
	ShowCompleted bool
	Cursor        int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView      View
	SelectedTaskID   string
	Tasks            TaskListState
	TemplateCursor   int
	SuggestionCursor int
	Dismissed        map[string]bool
	Input            InputMode
	Confirm          *Confirm
	Palette          CommandPaletteState
	HelpVisible      bool
	Notifications    []Notification
	DesktopEnabled   bool
	notifier         DesktopNotifier
	LastCelebration  board.Celebration
	SessionsLogged   int
	Status           StatusBar
	Keys             GlobalKeyMap
	Quitting         bool
	LastError        error

	ctx       context.Context
	board     *board.Board
	timer     *pomodoro.Timer
	Scheduler *scheduler.Engine
	ticker    *recurrence.Ticker
	logger    *log.Logger
	focusSeq  int
	notesKey  string

	// Bubble components used for rich TUI controls
	taskTable     table.Model
	templateList  list.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	notesArea     textarea.Model
	focusProgress progress.Model
	rateProgress  progress.Model
	helpModel     help.Model
	notesViewport viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// FocusTickMsg carries the timer generation so ticks from a paused run are
// dropped after a restart.
type FocusTickMsg struct {
	Seq int
}

type TaskDueMsg struct {
	Event scheduler.DueEvent
}

type RecurrenceTickMsg struct {
	At time.Time
}

// Deps wires the model to the running services. Only Board is required.
type Deps struct {
	Ctx                  context.Context
	Board                *board.Board
	Scheduler            *scheduler.Engine
	Ticker               *recurrence.Ticker
	Notifier             DesktopNotifier
	Logger               *log.Logger
	DesktopNotifications bool
}

func NewModel(deps Deps) Model {
	ctx := deps.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := deps.Board
	prefs := b.Preferences()

	m := Model{
		CurrentView: ViewTasks,
		Tasks: TaskListState{
			Criteria:      filter.CriteriaFromPreferences(prefs),
			ShowCompleted: true,
		},
		Dismissed:      make(map[string]bool),
		DesktopEnabled: deps.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		SessionsLogged: len(b.Store().Sessions(ctx)),
		Keys: GlobalKeyMap{
			Tasks:     "1",
			Templates: "2",
			Focus:     "3",
			Stats:     "4",
			Help:      "?",
			Quit:      "q",
		},
		ctx:       ctx,
		board:     b,
		Scheduler: deps.Scheduler,
		ticker:    deps.Ticker,
		logger:    logger.WithPrefix("ui"),
	}
	if deps.Notifier != nil {
		m.notifier = deps.Notifier
	}
	m.timer = pomodoro.NewTimer(prefs, uuid.NewString, func(s model.PomodoroSession) {
		b.RecordSession(ctx, s)
	})

	if spawned := b.ApplyRecurrence(ctx); len(spawned) > 0 {
		m.Status = StatusBar{Text: fmt.Sprintf("%d recurring task(s) renewed", len(spawned))}
	}
	m.syncReminders()
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

// Board exposes the working set, mainly for tests and the CLI.
func (m Model) Board() *board.Board {
	return m.board
}

func (m Model) Timer() *pomodoro.Timer {
	return m.timer
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Title", Width: 30},
		{Title: "Pri", Width: 6},
		{Title: "Category", Width: 10},
		{Title: "Due", Width: 16},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(14))

	m.templateList = list.New([]list.Item{}, list.NewDefaultDelegate(), 64, 14)
	m.templateList.Title = "Templates"
	m.templateList.SetShowHelp(false)
	m.templateList.SetFilteringEnabled(false)

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 56

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.notesArea = textarea.New()
	m.notesArea.SetWidth(48)
	m.notesArea.SetHeight(8)
	m.notesArea.ShowLineNumbers = false
	m.notesArea.Placeholder = "Task notes (markdown)"

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.rateProgress = progress.New(progress.WithSolidFill("#10b981"), progress.WithWidth(30))

	m.helpModel = help.New()
	m.notesViewport = viewport.New(48, 10)
}

// syncBubbleData pushes the board's projection into the bubble components
// and keeps the cursor inside the visible list.
func (m *Model) syncBubbleData() {
	visible := m.visibleTasks()
	if m.Tasks.Cursor >= len(visible) {
		m.Tasks.Cursor = len(visible) - 1
	}
	if m.Tasks.Cursor < 0 {
		m.Tasks.Cursor = 0
	}
	m.SelectedTaskID = ""
	if len(visible) > 0 {
		m.SelectedTaskID = visible[m.Tasks.Cursor].ID
	}

	now := m.board.Now()
	rows := make([]table.Row, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, table.Row{
			taskMarker(t, m.board.IsSelected(t.ID)),
			t.Title,
			string(t.Priority),
			m.board.CategoryByID(t.Category).Name,
			formatDue(t, now),
		})
	}
	m.taskTable.SetRows(rows)
	if len(rows) > 0 {
		m.taskTable.SetCursor(m.Tasks.Cursor)
	}

	templates := m.board.Templates()
	if m.TemplateCursor >= len(templates) {
		m.TemplateCursor = len(templates) - 1
	}
	if m.TemplateCursor < 0 {
		m.TemplateCursor = 0
	}
	items := make([]list.Item, 0, len(templates))
	for _, tpl := range templates {
		desc := fmt.Sprintf("%s | %s", tpl.Priority, tpl.Title)
		if len(tpl.Subtasks) > 0 {
			desc += fmt.Sprintf(" | %d subtasks", len(tpl.Subtasks))
		}
		items = append(items, listItem{title: tpl.Name, description: desc})
	}
	m.templateList.SetItems(items)
	if len(items) > 0 {
		m.templateList.Select(m.TemplateCursor)
	}

	if m.Input != InputNotes {
		notes := ""
		if t, ok := m.board.Task(m.SelectedTaskID); ok {
			notes = t.Notes
		}
		// glamour is slow enough to notice per keystroke
		if key := m.SelectedTaskID + "\x00" + notes; key != m.notesKey {
			m.notesKey = key
			m.notesViewport.SetContent(renderNotes(notes))
		}
	}
}

func (m Model) visibleTasks() []model.Task {
	return m.board.Visible(m.Tasks.Criteria, m.Tasks.ShowCompleted)
}

func (m Model) visibleIDs() []string {
	visible := m.visibleTasks()
	ids := make([]string, 0, len(visible))
	for _, t := range visible {
		ids = append(ids, t.ID)
	}
	return ids
}
