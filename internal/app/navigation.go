package app

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/flowo/internal/model"
)

type Screen string

const (
	ScreenSplash      Screen = "splash"
	ScreenLogin       Screen = "login"
	ScreenHome        Screen = "home"
	ScreenDetails     Screen = "details"
	ScreenAdd         Screen = "add"
	ScreenAddProperty Screen = "addProperty"
	ScreenProfile     Screen = "profile"
	ScreenTaskDetails Screen = "taskDetails"
)

var screens = []Screen{
	ScreenSplash, ScreenLogin, ScreenHome, ScreenDetails,
	ScreenAdd, ScreenAddProperty, ScreenProfile, ScreenTaskDetails,
}

// ParseScreen accepts a screen name case-insensitively. Splash and login are
// derived from the session and cannot be navigated to.
func ParseScreen(raw string) (Screen, error) {
	for _, s := range screens {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			if s == ScreenSplash || s == ScreenLogin {
				break
			}
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown screen %q", raw)
}

// NavigationPayload carries optional context for a transition.
type NavigationPayload struct {
	Property *model.Property
	TaskID   string
	Category *model.Category
}

// Navigation is the screen cursor plus the selections that screens read.
type Navigation struct {
	Screen              Screen
	PreviousScreen      Screen
	SelectedPropertyID  string
	SelectedTaskID      string
	PreselectedCategory *model.Category
}

// initialNavigation starts on home. Splash and login are never stored here;
// ActiveScreen derives them from the splash timer and the session state, so
// a signed-out user sees login whatever Screen holds.
func initialNavigation() Navigation {
	return Navigation{Screen: ScreenHome, PreviousScreen: ScreenHome}
}

// Navigate applies one transition. Selections not named by the payload are
// kept. The category preselection survives only a move to add that carries
// a category.
func (n Navigation) Navigate(target Screen, payload NavigationPayload) Navigation {
	next := n
	if target != n.Screen {
		next.PreviousScreen = n.Screen
	}
	next.Screen = target
	if payload.Property != nil {
		next.SelectedPropertyID = payload.Property.ID
	}
	if payload.TaskID != "" {
		next.SelectedTaskID = payload.TaskID
	}
	next.PreselectedCategory = nil
	if target == ScreenAdd && payload.Category != nil {
		c := *payload.Category
		next.PreselectedCategory = &c
	}
	return next
}
