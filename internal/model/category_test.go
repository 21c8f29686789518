package model

import (
	"errors"
	"testing"
	"time"
)

func TestEveryCategoryHasIcon(t *testing.T) {
	for _, c := range Categories() {
		if !c.IsValid() || c.Icon() == "" {
			t.Fatalf("category %q has no icon", c)
		}
	}
	if len(Categories()) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(Categories()))
	}
}

func TestCheckCategoryIconsDetectsGaps(t *testing.T) {
	order := []Category{CategoryPlumber, CategoryCarpenter}
	if err := checkCategoryIcons(order, map[Category]string{CategoryPlumber: "x"}); err == nil {
		t.Fatal("expected missing icon error")
	}
	extra := map[Category]string{CategoryPlumber: "x", CategoryCarpenter: "y", Category("Roofing"): "z"}
	if err := checkCategoryIcons(order, extra); err == nil {
		t.Fatal("expected surplus icon error")
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("  water filter upgrade/change ")
	if err != nil || c != CategoryWaterFilter {
		t.Fatalf("unexpected parse result: %q %v", c, err)
	}
	if _, err := ParseCategory("roofing"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestReminderHelpers(t *testing.T) {
	now := time.Date(2026, 2, 9, 14, 0, 0, 0, time.UTC)
	got := DefaultReminderAt(MustParseDate("2026-03-01"), now)
	if got.Format(ReminderLayout) != "2026-03-01T09:00" {
		t.Fatalf("unexpected default reminder: %s", got)
	}
	if got := DefaultReminderAt(Date{}, now); got.Format(ReminderLayout) != "2026-02-09T09:00" {
		t.Fatalf("unexpected default reminder without due date: %s", got)
	}

	at, err := ParseReminder("2026-03-01T18:30", time.UTC)
	if err != nil || at.Hour() != 18 || at.Minute() != 30 {
		t.Fatalf("unexpected reminder parse: %s %v", at, err)
	}
	if _, err := ParseReminder("", time.UTC); !errors.Is(err, ErrReminderRequired) {
		t.Fatalf("expected ErrReminderRequired, got %v", err)
	}
	if _, err := ParseReminder("tomorrow", time.UTC); !errors.Is(err, ErrInvalidReminder) {
		t.Fatalf("expected ErrInvalidReminder, got %v", err)
	}
}
