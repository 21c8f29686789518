package model

import (
	"testing"
	"time"
)

func TestClassifyDue(t *testing.T) {
	now := time.Date(2026, 2, 9, 14, 30, 0, 0, time.UTC)
	today := DateOf(now)

	cases := []struct {
		due  Date
		want string
		kind DueKind
	}{
		{today, "Due Today", DueToday},
		{today.AddDays(1), "Due Tomorrow", DueTomorrow},
		{today.AddDays(-3), "Overdue by 3 day(s)", DueOverdue},
		{today.AddDays(5), "Due in 5 days", DueLater},
		{today.AddDays(-1), "Overdue by 1 day(s)", DueOverdue},
	}
	for _, tc := range cases {
		got := ClassifyDue(tc.due, now)
		if got.String() != tc.want || got.Kind != tc.kind {
			t.Fatalf("ClassifyDue(%s) = %q (%s), want %q (%s)", tc.due, got, got.Kind, tc.want, tc.kind)
		}
	}
}

func TestDaysRemainingAtMidnight(t *testing.T) {
	now := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	if got := DaysRemaining(DateOf(now), now); got != 0 {
		t.Fatalf("expected 0 days at midnight, got %d", got)
	}
	if got := DaysRemaining(DateOf(now).AddDays(2), now); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
}

func TestDaysRemainingUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, loc)
	if got := ClassifyDue(MustParseDate("2026-02-09"), now); got.Kind != DueToday {
		t.Fatalf("expected due today in local zone, got %s", got)
	}
}

func TestDueUrgency(t *testing.T) {
	cases := map[int]int{30: 0, 45: 0, 15: 50, 0: 100, -5: 100}
	for days, want := range cases {
		if got := DueUrgency(days); got != want {
			t.Fatalf("DueUrgency(%d) = %d, want %d", days, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-09-01 ")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.String() != "2024-09-01" || d.Display() != "Sep 1, 2024" {
		t.Fatalf("unexpected date rendering: %s / %s", d, d.Display())
	}
	if _, err := ParseDate("09/01/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}
