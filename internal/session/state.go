// Package session bridges an external identity provider into the local
// three-state session model.
package session

import "github.com/sandeepkv93/flowo/internal/model"

type Kind int

const (
	KindLoading Kind = iota
	KindSignedOut
	KindSignedIn
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSignedOut:
		return "signed-out"
	case KindSignedIn:
		return "signed-in"
	default:
		return "unknown"
	}
}

// State is Loading, SignedOut or SignedIn(User). The zero value is Loading.
type State struct {
	kind Kind
	user model.User
}

func Loading() State { return State{kind: KindLoading} }

func SignedOut() State { return State{kind: KindSignedOut} }

func SignedIn(u model.User) State { return State{kind: KindSignedIn, user: u} }

// FromUser maps a provider event: a session object means signed in, nil
// means signed out.
func FromUser(u *model.User) State {
	if u == nil {
		return SignedOut()
	}
	return SignedIn(*u)
}

func (s State) Kind() Kind { return s.kind }

func (s State) User() (model.User, bool) {
	if s.kind != KindSignedIn {
		return model.User{}, false
	}
	return s.user, true
}

// WithUser replaces the signed-in user; other states are returned unchanged.
func (s State) WithUser(u model.User) State {
	if s.kind != KindSignedIn {
		return s
	}
	return SignedIn(u)
}

// Match calls exactly one of the handlers. Every state must be handled.
func (s State) Match(loading func(), signedOut func(), signedIn func(model.User)) {
	switch s.kind {
	case KindSignedIn:
		signedIn(s.user)
	case KindSignedOut:
		signedOut()
	default:
		loading()
	}
}
