package app

import (
	"context"
	"errors"

	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/session"
)

const (
	minPasswordLength     = 6
	ProfileUpdatedMessage = "Profile updated successfully!"
)

var errNoSessionProvider = errors.New("app: no session provider configured")

type ProfileInput struct {
	DisplayName     string
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileChange lists the provider calls a profile submission needs.
type ProfileChange struct {
	DisplayName *string
	Email       *string
	Password    string
}

func (c ProfileChange) Empty() bool {
	return c.DisplayName == nil && c.Email == nil && c.Password == ""
}

// PlanProfileUpdate validates a submission against the signed-in user
// without touching the provider.
func (a *App) PlanProfileUpdate(in ProfileInput) (ProfileChange, error) {
	u, ok := a.User()
	if !ok {
		return ProfileChange{}, session.ErrNotAuthenticated
	}
	var change ProfileChange
	if in.Password != "" {
		if in.Password != in.ConfirmPassword {
			return ProfileChange{}, invalid("password", "Passwords do not match.")
		}
		if len(in.Password) < minPasswordLength {
			return ProfileChange{}, invalid("password", "Password should be at least 6 characters.")
		}
		change.Password = in.Password
	}
	if in.DisplayName != model.Deref(u.DisplayName) {
		change.DisplayName = model.Ref(in.DisplayName)
	}
	if in.Email != model.Deref(u.Email) {
		change.Email = model.Ref(in.Email)
	}
	if change.Empty() {
		return ProfileChange{}, invalid("profile", "No changes were made.")
	}
	return change, nil
}

// ApplyProfileChange calls the provider in order: display name, email,
// password. The patch holds every field the provider accepted, even when a
// later call fails.
func ApplyProfileChange(ctx context.Context, p session.Provider, c ProfileChange) (model.UserPatch, error) {
	var patch model.UserPatch
	if p == nil {
		return patch, errNoSessionProvider
	}
	if c.DisplayName != nil {
		if err := p.UpdateDisplayName(ctx, *c.DisplayName); err != nil {
			return patch, err
		}
		patch.DisplayName = c.DisplayName
	}
	if c.Email != nil {
		if err := p.UpdateEmail(ctx, *c.Email); err != nil {
			return patch, err
		}
		patch.Email = c.Email
	}
	if c.Password != "" {
		if err := p.UpdatePassword(ctx, c.Password); err != nil {
			return patch, err
		}
	}
	return patch, nil
}

// UpdateUser merges accepted profile fields into the local user. The
// provider is not consulted again until its next session event.
func (a *App) UpdateUser(patch model.UserPatch) {
	u, ok := a.User()
	if !ok {
		return
	}
	a.session = a.session.WithUser(u.Merge(patch))
}

// UpdateProfile plans, applies and merges a profile submission in one call.
func (a *App) UpdateProfile(ctx context.Context, in ProfileInput) error {
	change, err := a.PlanProfileUpdate(in)
	if err != nil {
		return err
	}
	patch, err := ApplyProfileChange(ctx, a.deps.Session, change)
	a.UpdateUser(patch)
	if err != nil {
		a.deps.Logger.Printf("[Profile] Update failed: %v", err)
	}
	return err
}

func (a *App) SignIn(ctx context.Context) error {
	if a.deps.Session == nil {
		return errNoSessionProvider
	}
	return a.deps.Session.SignInInteractive(ctx)
}

// SignOut asks the provider to end the session. Local state follows only
// when the session stream reports it.
func (a *App) SignOut(ctx context.Context) error {
	if a.deps.Session == nil {
		return errNoSessionProvider
	}
	return a.deps.Session.SignOut(ctx)
}
