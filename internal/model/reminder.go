package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ReminderLayout is the minute-precision local datetime layout accepted for
// reminder input.
const ReminderLayout = "2006-01-02T15:04"

var ErrInvalidReminder = errors.New("model: invalid reminder time")

const defaultReminderHour = 9

// DefaultReminderAt proposes 09:00 on the due date, or today when no due
// date has been chosen yet.
func DefaultReminderAt(nextDue Date, now time.Time) time.Time {
	d := nextDue
	if d.IsZero() {
		d = DateOf(now)
	}
	return d.Midnight(now.Location()).Add(defaultReminderHour * time.Hour)
}

// ParseReminder accepts RFC 3339 instants or minute-precision local times.
func ParseReminder(raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrReminderRequired
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(ReminderLayout, trimmed, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidReminder, trimmed)
	}
	return t, nil
}
