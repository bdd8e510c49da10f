package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusboard/internal/commands"
	"github.com/sandeepkv93/focusboard/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentView = ViewTasks
			return m.addFromArgs(a)
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.CurrentView = ViewTasks
			m.Tasks.Criteria.Search = s.Text
			if s.Text == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s (%d found)", s.Text, len(m.visibleTasks()))}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.CurrentView = ViewTasks
			m.Tasks.Criteria.Type = f.Type
			return commands.Result{Message: fmt.Sprintf("filter: %s", f.Type)}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			m.CurrentView = ViewTasks
			m.Tasks.Criteria.Sort = s.By
			if s.Order != "" {
				m.Tasks.Criteria.Order = s.Order
			}
			m.persistSort()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			if c.Create {
				cat, err := m.board.AddCategory(m.ctx, c.Name, c.Color, c.Icon)
				if err != nil {
					return commands.Result{}, err
				}
				return commands.Result{Message: fmt.Sprintf("category added: %s (@%s)", cat.Name, cat.ID)}, nil
			}
			m.CurrentView = ViewTasks
			if c.ID != "" && m.board.CategoryByID(c.ID).ID != c.ID {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", c.ID)}
			}
			m.Tasks.Criteria.Category = c.ID
			if c.ID == "" {
				return commands.Result{Message: "category filter cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("category: %s", m.board.CategoryByID(c.ID).Name)}, nil
		},
		Priority: func(p commands.PriorityArgs) (commands.Result, error) {
			m.CurrentView = ViewTasks
			m.Tasks.Criteria.Priority = p.Priority
			if p.Priority == "" {
				return commands.Result{Message: "priority filter cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("priority: %s", p.Priority)}, nil
		},
		Template: func(t commands.TemplateArgs) (commands.Result, error) {
			tpl, ok := m.board.TemplateByName(t.Name)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no template named %q", t.Name)}
			}
			task, err := m.board.CreateFromTemplate(m.ctx, tpl.ID)
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTasks
			m.syncReminders()
			return commands.Result{Message: fmt.Sprintf("created from template: %s", task.Title)}, nil
		},
		Export: func(p commands.PathArgs) (commands.Result, error) {
			n, err := exportToFile(m.ctx, m.board, p.Path)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported %d bytes to %s", n, p.Path)}, nil
		},
		Import: func(p commands.PathArgs) (commands.Result, error) {
			if err := importFromFile(m.ctx, m.board, p.Path); err != nil {
				return commands.Result{}, err
			}
			m.applyPreferences(m.board.Preferences())
			return commands.Result{Message: fmt.Sprintf("imported %s (%d tasks)", p.Path, len(m.board.Tasks()))}, nil
		},
		Set: func(a commands.SetArgs) (commands.Result, error) {
			prefs, err := m.board.SetPreference(m.ctx, a.Key, a.Value)
			if err != nil {
				return commands.Result{}, err
			}
			m.applyPreferences(prefs)
			key, _ := model.CanonicalPreferenceKey(a.Key)
			value, _ := prefs.Get(key)
			return commands.Result{Message: fmt.Sprintf("%s = %s", key, value)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	m.notify("Command", res.Message, "info")
	return m
}

// applyPreferences pushes edited preferences into the parts of the model that
// cache them.
func (m *Model) applyPreferences(prefs model.Preferences) {
	m.timer.SetPreferences(prefs)
	m.Tasks.Criteria.Sort = prefs.SortBy
	m.Tasks.Criteria.Order = prefs.SortOrder
	m.syncReminders()
}
