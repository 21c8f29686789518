package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// DesktopPlatform shows notifications through notify-send on Linux and
// osascript on macOS. Terminals have no permission prompt, so the grant is
// kept in-process: the configuration switch plays the role of system
// settings and a missing helper binary means unsupported.
type DesktopPlatform struct {
	mu         sync.Mutex
	enabled    bool
	permission Permission
	lookPath   func(string) (string, error)
	run        func(name string, args ...string) error
}

func NewDesktopPlatform(enabled bool) *DesktopPlatform {
	return &DesktopPlatform{
		enabled:    enabled,
		permission: PermissionDefault,
		lookPath:   exec.LookPath,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (d *DesktopPlatform) helper() string {
	switch runtime.GOOS {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

func (d *DesktopPlatform) QueryPermission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return PermissionDenied
	}
	name := d.helper()
	if name == "" {
		return PermissionUnsupported
	}
	if _, err := d.lookPath(name); err != nil {
		return PermissionUnsupported
	}
	return d.permission
}

func (d *DesktopPlatform) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDefault, err
	}
	current := d.QueryPermission()
	if current != PermissionDefault {
		return current, nil
	}
	d.mu.Lock()
	d.permission = PermissionGranted
	d.mu.Unlock()
	return PermissionGranted, nil
}

func (d *DesktopPlatform) Show(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return d.run("notify-send", title, body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return d.run("osascript", "-e", script)
	default:
		return ErrNotificationsUnsupported
	}
}

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escapeAppleScript makes s safe inside a double-quoted AppleScript literal.
func escapeAppleScript(s string) string {
	return appleScriptEscaper.Replace(s)
}
