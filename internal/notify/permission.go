package notify

import (
	"context"
	"errors"
	"fmt"
)

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
	// PermissionUnsupported is reported when the host cannot show
	// notifications at all.
	PermissionUnsupported Permission = "unsupported"
)

var (
	ErrPermissionDenied         = errors.New("notify: notifications are blocked")
	ErrNotificationsUnsupported = errors.New("notify: notifications are not supported on this system")
)

// Platform is the host notification surface.
type Platform interface {
	QueryPermission() Permission
	// RequestPermission prompts when the user has not decided yet. It blocks
	// until the user answers; there is no timeout.
	RequestPermission(ctx context.Context) (Permission, error)
	Show(title, body string) error
}

// AcquirePermission returns nil only when notifications may be shown.
// A previous denial is never re-prompted.
func AcquirePermission(ctx context.Context, p Platform) error {
	if p == nil {
		return ErrNotificationsUnsupported
	}
	switch p.QueryPermission() {
	case PermissionGranted:
		return nil
	case PermissionDenied:
		return ErrPermissionDenied
	case PermissionUnsupported:
		return ErrNotificationsUnsupported
	}
	got, err := p.RequestPermission(ctx)
	if err != nil {
		return fmt.Errorf("notify: request permission: %w", err)
	}
	if got != PermissionGranted {
		return ErrPermissionDenied
	}
	return nil
}

// Explain turns a permission failure into the alert shown to the user.
func Explain(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPermissionDenied):
		return "Notifications are blocked. Please enable them in your system settings to use reminders."
	case errors.Is(err, ErrNotificationsUnsupported):
		return "This system does not support desktop notifications."
	default:
		return err.Error()
	}
}
