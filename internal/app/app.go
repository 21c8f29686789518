// Package app holds the navigation root: every property, task and session
// mutation goes through App, which the terminal UI drives from its update
// loop. App is not safe for concurrent use.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/notify"
	"github.com/sandeepkv93/flowo/internal/session"
	"github.com/sandeepkv93/flowo/internal/storage"
)

// ReminderScheduler arms a local notification for a task. It returns false
// when nothing was armed.
type ReminderScheduler interface {
	Schedule(task model.MaintenanceTask, now time.Time) bool
}

type Deps struct {
	Session   session.Provider
	Reminders ReminderScheduler
	Email     notify.EmailSender
	// Repo is optional. Without it state lives only in memory.
	Repo   storage.Repository
	Logger *log.Logger
	Now    func() time.Time
	NewID  func() string
}

type App struct {
	deps         Deps
	properties   []model.Property
	tasks        []model.MaintenanceTask
	nav          Navigation
	session      session.State
	splashActive bool
}

func New(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard, "", 0)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &App{
		deps:         deps,
		nav:          initialNavigation(),
		session:      session.Loading(),
		splashActive: true,
	}
}

// Load replaces in-memory state with what the repository holds. The first
// stored property becomes the selection.
func (a *App) Load(ctx context.Context) error {
	if a.deps.Repo == nil {
		return nil
	}
	propRows, err := a.deps.Repo.ListProperties(ctx, storage.PropertyListFilter{})
	if err != nil {
		return fmt.Errorf("load properties: %w", err)
	}
	taskRows, err := a.deps.Repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	props := make([]model.Property, 0, len(propRows))
	for _, row := range propRows {
		props = append(props, row.Model())
	}
	tasks := make([]model.MaintenanceTask, 0, len(taskRows))
	for _, row := range taskRows {
		task, err := row.Model()
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		tasks = append(tasks, task)
	}
	a.properties = props
	a.tasks = tasks
	if len(props) > 0 {
		a.nav.SelectedPropertyID = props[0].ID
	}
	a.deps.Logger.Printf("[App] Loaded %d properties and %d tasks", len(props), len(tasks))
	return nil
}

func (a *App) Now() time.Time { return a.deps.Now() }

func (a *App) Navigation() Navigation { return a.nav }

func (a *App) Navigate(target Screen, payload NavigationPayload) {
	a.nav = a.nav.Navigate(target, payload)
}

// Back returns to the previous screen.
func (a *App) Back() {
	a.Navigate(a.nav.PreviousScreen, NavigationPayload{})
}

func (a *App) SplashActive() bool { return a.splashActive }

// SplashDone ends the fixed splash period.
func (a *App) SplashDone() { a.splashActive = false }

func (a *App) Session() session.State { return a.session }

func (a *App) User() (model.User, bool) { return a.session.User() }

// ApplySession records a session event. Signing out drops the local user
// and resets navigation, so the next sign-in starts on home.
func (a *App) ApplySession(st session.State) {
	a.session = st
	st.Match(
		func() {},
		func() {
			a.nav = initialNavigation()
			if len(a.properties) > 0 {
				a.nav.SelectedPropertyID = a.properties[0].ID
			}
			a.deps.Logger.Printf("[Session] Signed out")
		},
		func(u model.User) {
			a.deps.Logger.Printf("[Session] Signed in uid=%s", u.UID)
		},
	)
}

// ActiveScreen is what the UI renders: splash until the session resolves and
// the splash period ends, login while signed out, otherwise the navigation
// screen after the taskDetails guard.
func (a *App) ActiveScreen() Screen {
	if a.splashActive || a.session.Kind() == session.KindLoading {
		return ScreenSplash
	}
	if a.session.Kind() == session.KindSignedOut {
		return ScreenLogin
	}
	return a.resolve(a.nav.Screen)
}

func (a *App) resolve(screen Screen) Screen {
	switch screen {
	case ScreenTaskDetails:
		if _, _, ok := a.SelectedTask(); ok {
			return ScreenTaskDetails
		}
		return a.resolve(ScreenDetails)
	case ScreenDetails:
		if _, ok := a.SelectedProperty(); ok {
			return ScreenDetails
		}
		return ScreenHome
	default:
		return screen
	}
}
