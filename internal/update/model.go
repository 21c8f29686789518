package update

import (
	"context"
	"io"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/config"
	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/notify"
	"github.com/sandeepkv93/flowo/internal/scheduler"
	"github.com/sandeepkv93/flowo/internal/session"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Help    string
	Back    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Deps wires the model to the app root and its side channels. Bridge,
// Engine and Reminders may be nil in tests.
type Deps struct {
	App       *app.App
	Bridge    *session.Bridge
	Engine    *scheduler.Engine
	Reminders *notify.Reminders
	Platform  notify.Platform
	Config    config.RuntimeConfig
	Logger    *log.Logger
}

type Model struct {
	app       *app.App
	bridge    *session.Bridge
	engine    *scheduler.Engine
	reminders *notify.Reminders
	platform  notify.Platform
	cfg       config.RuntimeConfig
	logger    *log.Logger
	ctx       context.Context

	Status      StatusBar
	Palette     CommandPaletteState
	HelpVisible bool
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	ReminderLog []scheduler.ReminderEvent

	signingIn         bool
	permissionPending bool
	homeCursor        int
	propertyCursor    int
	detailsCursor     int
	form              formState

	commandInput  textinput.Model
	completionBar progress.Model
	urgencyBar    progress.Model
	splashSpinner spinner.Model
	detailsTable  table.Model
	helpModel     help.Model
}

type SplashDoneMsg struct{}

type SessionMsg struct {
	State session.State
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

type PermissionResultMsg struct {
	Err error
}

type AuthResultMsg struct {
	Op  string
	Err error
}

type ProfileResultMsg struct {
	Patch model.UserPatch
	Err   error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	a := deps.App
	if a == nil {
		a = app.New(app.Deps{Logger: logger})
	}
	m := Model{
		app:       a,
		bridge:    deps.Bridge,
		engine:    deps.Engine,
		reminders: deps.Reminders,
		platform:  deps.Platform,
		cfg:       deps.Config,
		logger:    logger,
		ctx:       context.Background(),
		Keys: GlobalKeyMap{
			Palette: "/",
			Help:    "?",
			Back:    "esc",
			Quit:    "q",
		},
	}
	if m.bridge != nil {
		m.app.ApplySession(m.bridge.Current())
	}
	m.initBubbleComponents()
	m.syncSelection()
	m.syncBubbleData()
	return m
}

// App exposes the navigation root, mostly for tests and the CLI.
func (m Model) App() *app.App { return m.app }

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.completionBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.urgencyBar = progress.New(progress.WithGradient("#5A9E6F", "#D9534F"), progress.WithWidth(40))

	m.splashSpinner = spinner.New()
	m.splashSpinner.Spinner = spinner.Dot

	cols := []table.Column{
		{Title: "Task", Width: 24},
		{Title: "Category", Width: 18},
		{Title: "Next due", Width: 12},
		{Title: "Status", Width: 18},
		{Title: "Done", Width: 5},
	}
	m.detailsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(8))

	m.helpModel = help.New()
}
