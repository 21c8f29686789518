package model

import (
	"errors"
	"strings"
)

// Property is a physical location the user maintains. Properties are never
// edited after creation.
type Property struct {
	ID      string
	Name    string
	Address string
}

func (p Property) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: property id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: property name is required")
	}
	if strings.TrimSpace(p.Address) == "" {
		return errors.New("model: property address is required")
	}
	return nil
}

func FindProperty(props []Property, id string) (Property, bool) {
	if id == "" {
		return Property{}, false
	}
	for _, p := range props {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}
