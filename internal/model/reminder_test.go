package model

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultReminderAt(t *testing.T) {
	now := time.Date(2024, 8, 20, 10, 30, 0, 0, time.UTC)

	got := DefaultReminderAt(MustParseDate("2024-09-01"), now)
	want := time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = DefaultReminderAt(Date{}, now)
	want = time.Date(2024, 8, 20, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected today at 09:00, got %v", got)
	}
}

func TestParseReminder(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr error
	}{
		{name: "local minute layout", raw: "2024-08-21T09:15", want: time.Date(2024, 8, 21, 9, 15, 0, 0, time.UTC)},
		{name: "rfc3339", raw: "2024-08-21T09:15:00Z", want: time.Date(2024, 8, 21, 9, 15, 0, 0, time.UTC)},
		{name: "trimmed", raw: "  2024-08-21T09:15 ", want: time.Date(2024, 8, 21, 9, 15, 0, 0, time.UTC)},
		{name: "empty", raw: "  ", wantErr: ErrReminderRequired},
		{name: "garbage", raw: "tomorrow", wantErr: ErrInvalidReminder},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseReminder(tc.raw, time.UTC)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
