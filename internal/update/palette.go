package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/commands"
	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/views"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.Focus()
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m.closePalette(), nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Go: func(g commands.GoArgs) (commands.Result, error) {
			screen, err := app.ParseScreen(g.Screen)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.app.Navigate(screen, app.NavigationPayload{})
			return commands.Result{Message: fmt.Sprintf("opened %s", m.app.ActiveScreen())}, nil
		},
		Progress: func(p commands.ProgressArgs) (commands.Result, error) {
			task, _, ok := m.app.SelectedTask()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			if err := m.app.SetCompletion(m.ctx, task.ID, p.Percent); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s is %d%% complete", task.Name, model.ClampPercentage(p.Percent))}, nil
		},
		Remind: func() (commands.Result, error) {
			task, _, ok := m.app.SelectedTask()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			return m.toggleEmailReminder(task.ID)
		},
		SignOut: func() (commands.Result, error) {
			follow = m.signOutCmd()
			return commands.Result{Message: "signing out"}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			category, err := model.ParseCategory(c.Name)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.app.Navigate(app.ScreenAdd, app.NavigationPayload{Category: &category})
			return commands.Result{Message: fmt.Sprintf("new %s task", category)}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	return m.closePalette(), follow
}

// toggleEmailReminder flips the email reminder; turning it on sends the
// email once.
func (m Model) toggleEmailReminder(taskID string) (commands.Result, error) {
	enabled, err := m.app.ToggleTaskReminder(m.ctx, taskID)
	if err != nil {
		return commands.Result{}, err
	}
	task, _ := m.app.Task(taskID)
	if enabled {
		return commands.Result{Message: "email reminder sent for " + task.Name}, nil
	}
	return commands.Result{Message: "email reminder disabled for " + task.Name}, nil
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}
