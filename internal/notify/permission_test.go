package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAcquirePermissionOutcomes(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name        string
		initial     Permission
		answer      Permission
		want        error
		wantPrompts int
	}{
		{"already granted", PermissionGranted, PermissionDenied, nil, 0},
		{"previously denied", PermissionDenied, PermissionGranted, ErrPermissionDenied, 0},
		{"prompt granted", PermissionDefault, PermissionGranted, nil, 1},
		{"prompt denied", PermissionDefault, PermissionDenied, ErrPermissionDenied, 1},
		{"unsupported", PermissionUnsupported, PermissionGranted, ErrNotificationsUnsupported, 0},
	}
	for _, tc := range cases {
		p := NewMemoryPlatform(tc.initial, tc.answer)
		err := AcquirePermission(ctx, p)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
		if p.Prompts() != tc.wantPrompts {
			t.Fatalf("%s: prompts = %d, want %d", tc.name, p.Prompts(), tc.wantPrompts)
		}
	}
}

func TestAcquirePermissionNilPlatform(t *testing.T) {
	if err := AcquirePermission(context.Background(), nil); !errors.Is(err, ErrNotificationsUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestExplain(t *testing.T) {
	if Explain(nil) != "" {
		t.Fatal("expected empty explanation for nil")
	}
	if msg := Explain(ErrPermissionDenied); !strings.Contains(msg, "settings") {
		t.Fatalf("expected settings instruction, got %q", msg)
	}
}

func TestDesktopPlatformPermission(t *testing.T) {
	d := NewDesktopPlatform(false)
	if d.QueryPermission() != PermissionDenied {
		t.Fatalf("disabled platform should report denied, got %s", d.QueryPermission())
	}

	d = NewDesktopPlatform(true)
	d.lookPath = func(string) (string, error) { return "", errors.New("missing") }
	if d.helper() != "" && d.QueryPermission() != PermissionUnsupported {
		t.Fatalf("missing helper should report unsupported, got %s", d.QueryPermission())
	}

	d.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	if d.helper() == "" {
		t.Skip("no desktop helper on this OS")
	}
	if d.QueryPermission() != PermissionDefault {
		t.Fatalf("expected default before prompt, got %s", d.QueryPermission())
	}
	got, err := d.RequestPermission(context.Background())
	if err != nil || got != PermissionGranted {
		t.Fatalf("unexpected request result: %s %v", got, err)
	}
	var calls []string
	d.run = func(name string, args ...string) error {
		calls = append(calls, name)
		return nil
	}
	if err := d.Show("title", `say "hi"`); err != nil {
		t.Fatalf("show: %v", err)
	}
	if len(calls) != 1 || calls[0] != d.helper() {
		t.Fatalf("unexpected helper calls: %v", calls)
	}
}
