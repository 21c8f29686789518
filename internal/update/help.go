package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.screenBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Screen:   string(m.app.ActiveScreen()),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Back, Action: "go back"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) screenBindings() []KeyBinding {
	switch m.app.ActiveScreen() {
	case app.ScreenLogin:
		return []KeyBinding{{Key: "enter", Action: "sign in"}}
	case app.ScreenHome:
		return []KeyBinding{
			{Key: "j/k", Action: "move task cursor"},
			{Key: "h/l", Action: "move property cursor"},
			{Key: "enter", Action: "open task"},
			{Key: "d", Action: "property details"},
			{Key: "a", Action: "add task"},
			{Key: "n", Action: "add property"},
			{Key: "p", Action: "profile"},
			{Key: "1-9,0", Action: "add task in category"},
		}
	case app.ScreenDetails:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "open task"},
			{Key: "a", Action: "add task"},
		}
	case app.ScreenTaskDetails:
		return []KeyBinding{
			{Key: "+/-", Action: "completion +/-10%"},
			{Key: "r", Action: "toggle email reminder"},
		}
	case app.ScreenAdd, app.ScreenAddProperty, app.ScreenProfile:
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: "left/right", Action: "cycle choice"},
			{Key: "space", Action: "toggle"},
			{Key: "ctrl+s", Action: "submit"},
		}
	default:
		return nil
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.screenBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.screenBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
