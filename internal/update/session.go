package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/session"
)

const (
	opSignIn  = "signin"
	opSignOut = "signout"
)

var errNoSession = errors.New("update: no session configured")

func waitForSessionCmd(ch <-chan session.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return SessionMsg{State: st}
	}
}

func (m Model) provider() session.Provider {
	if m.bridge == nil {
		return nil
	}
	return m.bridge.Provider()
}

func (m Model) signInCmd() tea.Cmd {
	bridge := m.bridge
	ctx := m.ctx
	return func() tea.Msg {
		if bridge == nil {
			return AuthResultMsg{Op: opSignIn, Err: errNoSession}
		}
		return AuthResultMsg{Op: opSignIn, Err: bridge.SignIn(ctx)}
	}
}

func (m Model) signOutCmd() tea.Cmd {
	bridge := m.bridge
	ctx := m.ctx
	return func() tea.Msg {
		if bridge == nil {
			return AuthResultMsg{Op: opSignOut, Err: errNoSession}
		}
		return AuthResultMsg{Op: opSignOut, Err: bridge.SignOut(ctx)}
	}
}

func applyProfileCmd(ctx context.Context, p session.Provider, change app.ProfileChange) tea.Cmd {
	return func() tea.Msg {
		patch, err := app.ApplyProfileChange(ctx, p, change)
		return ProfileResultMsg{Patch: patch, Err: err}
	}
}

func (m Model) applySession(st session.State) Model {
	before := m.app.Session().Kind()
	m.app.ApplySession(st)
	m.signingIn = false
	st.Match(
		func() {},
		func() {
			if before == session.KindSignedIn {
				m.Status = StatusBar{Text: "signed out"}
			}
			m.Palette = CommandPaletteState{}
			m.HelpVisible = false
		},
		func(u model.User) {
			m.Status = StatusBar{Text: "signed in as " + u.Greeting()}
		},
	)
	m.syncSelection()
	return m
}

func (m Model) applyAuthResult(msg AuthResultMsg) Model {
	if msg.Op == opSignIn {
		m.signingIn = false
	}
	if msg.Err != nil {
		m.LastError = msg.Err
		m.logger.Printf("[Session] %s failed: %v", msg.Op, msg.Err)
		m.Status = StatusBar{Text: explainAuth(msg.Err), IsError: true}
	}
	return m
}

func explainAuth(err error) string {
	return session.Explain(err)
}
