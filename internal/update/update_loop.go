package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/views"
)

const appName = "Flowo"

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.Tick(m.cfg.SplashDuration, func(time.Time) tea.Msg { return SplashDoneMsg{} }),
		m.splashSpinner.Tick,
	}
	if m.bridge != nil {
		cmds = append(cmds, waitForSessionCmd(m.bridge.Events()))
	}
	if m.engine != nil {
		cmds = append(cmds, waitForReminderCmd(m.engine.C()))
	}
	return tea.Batch(cmds...)
}

// Update runs one message through the screen handlers and then re-derives
// the form, cursors and widgets from the app state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncForm()
	next.syncSelection()
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.app.ActiveScreen() != app.ScreenSplash {
			return m, nil
		}
		var cmd tea.Cmd
		m.splashSpinner, cmd = m.splashSpinner.Update(typed)
		return m, cmd
	case SplashDoneMsg:
		m.app.SplashDone()
		return m, nil
	case SessionMsg:
		m = m.applySession(typed.State)
		if m.bridge != nil {
			return m, waitForSessionCmd(m.bridge.Events())
		}
		return m, nil
	case AuthResultMsg:
		return m.applyAuthResult(typed), nil
	case ProfileResultMsg:
		return m.applyProfileResult(typed), nil
	case PermissionResultMsg:
		return m.applyPermissionResult(typed.Err), nil
	case ReminderDueMsg:
		m = m.applyReminder(typed.Event)
		if m.engine != nil {
			return m, waitForReminderCmd(m.engine.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	screen := m.app.ActiveScreen()

	if m.Palette.Active {
		if keyStr == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg)
	}
	if isFormScreen(screen) {
		return m.handleFormKey(msg)
	}

	switch keyStr {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Palette:
		if screen == app.ScreenSplash || screen == app.ScreenLogin {
			return m, nil
		}
		return m.openPalette(), nil
	case m.Keys.Back:
		if screen == app.ScreenDetails || screen == app.ScreenTaskDetails {
			m.app.Back()
		}
		return m, nil
	}

	switch screen {
	case app.ScreenLogin:
		return m.handleLoginKey(msg)
	case app.ScreenHome:
		return m.handleHomeKey(msg)
	case app.ScreenDetails:
		return m.handleDetailsKey(msg)
	case app.ScreenTaskDetails:
		return m.handleTaskDetailsKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	screen := m.app.ActiveScreen()
	var main string
	switch screen {
	case app.ScreenSplash:
		return m.renderSplash()
	case app.ScreenLogin:
		main = m.renderLogin()
	case app.ScreenHome:
		main = m.renderHome()
	case app.ScreenDetails:
		main = m.renderDetails()
	case app.ScreenTaskDetails:
		main = m.renderTaskDetails()
	case app.ScreenAdd, app.ScreenAddProperty, app.ScreenProfile:
		main = m.renderForm()
	}

	header := fmt.Sprintf("%s | %s", appName, screen)
	if u, ok := m.app.User(); ok {
		header += " | " + u.Greeting()
	}
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}
	return views.RenderApp(views.AppData{
		Header:       header,
		MainPane:     main,
		SidePane:     m.renderCommandPalette() + m.renderHelpIfVisible(),
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderLastReminder(),
		Footer:       fmt.Sprintf("keys: %s palette | %s help | %s back | %s quit", m.Keys.Palette, m.Keys.Help, m.Keys.Back, m.Keys.Quit),
	})
}
