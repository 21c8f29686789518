package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/storage"
)

type PropertyInput struct {
	Name    string
	Address string
}

func (a *App) AddProperty(ctx context.Context, in PropertyInput) (model.Property, error) {
	name := strings.TrimSpace(in.Name)
	address := strings.TrimSpace(in.Address)
	if name == "" || address == "" {
		return model.Property{}, invalid("property", "Please fill out all property details.")
	}
	p := model.Property{ID: a.deps.NewID(), Name: name, Address: address}
	if a.deps.Repo != nil {
		if err := a.deps.Repo.CreateProperty(ctx, storage.PropertyFromModel(p, a.deps.Now())); err != nil {
			return model.Property{}, fmt.Errorf("save property: %w", err)
		}
	}
	a.properties = append(a.properties, p)
	if len(a.properties) == 1 {
		a.nav.SelectedPropertyID = p.ID
	}
	a.deps.Logger.Printf("[App] Added property %q", p.Name)
	a.Navigate(ScreenHome, NavigationPayload{})
	return p, nil
}

func (a *App) Properties() []model.Property {
	out := make([]model.Property, len(a.properties))
	copy(out, a.properties)
	return out
}

func (a *App) Property(id string) (model.Property, bool) {
	return model.FindProperty(a.properties, id)
}

// SelectedProperty resolves the selection, falling back to the first
// property. ok is false only when no property exists.
func (a *App) SelectedProperty() (model.Property, bool) {
	if p, ok := a.Property(a.nav.SelectedPropertyID); ok {
		return p, true
	}
	if len(a.properties) > 0 {
		return a.properties[0], true
	}
	return model.Property{}, false
}
