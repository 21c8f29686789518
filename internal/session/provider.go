package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/flowo/internal/model"
)

// Provider is the external identity provider. Observe delivers the current
// session and every later change until the returned func is called.
type Provider interface {
	Observe(fn func(*model.User)) (unsubscribe func())
	SignInInteractive(ctx context.Context) error
	SignOut(ctx context.Context) error
	UpdateDisplayName(ctx context.Context, name string) error
	UpdateEmail(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, password string) error
}

type Code string

const (
	CodeRequiresRecentLogin Code = "requires-recent-login"
	CodeUnauthorizedDomain  Code = "unauthorized-domain"
	CodeInvalidEmail        Code = "invalid-email"
	CodeEmailInUse          Code = "email-already-in-use"
	CodeWeakPassword        Code = "weak-password"
	CodeNotAuthenticated    Code = "not-authenticated"
	CodeUserNotFound        Code = "user-not-found"
	CodeSignInFailed        Code = "sign-in-failed"
	CodeInternal            Code = "internal-error"
)

type AuthError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth/%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("auth/%s: %s", e.Code, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches any AuthError carrying the same code.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Code == e.Code
}

var (
	ErrRequiresRecentLogin = &AuthError{Code: CodeRequiresRecentLogin, Message: "this operation requires a recent sign-in"}
	ErrNotAuthenticated    = &AuthError{Code: CodeNotAuthenticated, Message: "not authenticated"}
)

func authErr(code Code, msg string, err error) error {
	return &AuthError{Code: code, Message: msg, Err: err}
}

// Explain renders an auth failure for the user. The requires-recent-login
// case carries its remediation.
func Explain(err error) string {
	if err == nil {
		return ""
	}
	var ae *AuthError
	if !errors.As(err, &ae) {
		return err.Error()
	}
	switch ae.Code {
	case CodeRequiresRecentLogin:
		return "This action is sensitive and requires recent authentication. Please sign out and sign in again to continue."
	case CodeUnauthorizedDomain:
		return "Authentication failed: this app is not authorized for sign-in. Add it to the authorized domains of your identity project."
	case CodeNotAuthenticated:
		return "Not authenticated."
	case CodeInvalidEmail:
		return "The email address is badly formatted."
	case CodeEmailInUse:
		return "The email address is already in use by another account."
	case CodeWeakPassword:
		return "Password should be at least 6 characters."
	case CodeSignInFailed:
		return "Could not sign in. Check your identity provider configuration and try again."
	default:
		return ae.Message
	}
}
