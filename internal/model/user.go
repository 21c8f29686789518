package model

import "strings"

// User is the local projection of the identity provider's session.
type User struct {
	UID         string
	DisplayName *string
	Email       *string
	PhotoURL    *string
}

// UserPatch carries the fields a profile edit may change. Nil means unchanged.
type UserPatch struct {
	DisplayName *string
	Email       *string
}

func (u User) Merge(p UserPatch) User {
	out := u
	if p.DisplayName != nil {
		out.DisplayName = Ref(*p.DisplayName)
	}
	if p.Email != nil {
		out.Email = Ref(*p.Email)
	}
	return out
}

// Greeting picks the friendliest available name.
func (u User) Greeting() string {
	if s := Deref(u.DisplayName); strings.TrimSpace(s) != "" {
		return strings.Fields(s)[0]
	}
	if s := Deref(u.Email); s != "" {
		if at := strings.Index(s, "@"); at > 0 {
			return s[:at]
		}
		return s
	}
	return "there"
}

func Ref[T any](v T) *T { return &v }

func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
