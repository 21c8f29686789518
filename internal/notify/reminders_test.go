package notify

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/scheduler"
)

func reminderTask(at *time.Time) model.MaintenanceTask {
	return model.MaintenanceTask{
		ID:                   "task-1",
		Name:                 "Clean HVAC filter",
		Category:             model.CategoryDeepCleaning,
		PropertyID:           "prop-1",
		NotificationsEnabled: at != nil,
		ReminderAt:           at,
	}
}

func TestScheduleArmsFutureReminder(t *testing.T) {
	engine := scheduler.NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	at := now.Add(30 * time.Millisecond)
	r := NewReminders(engine, NewMemoryPlatform(PermissionGranted, PermissionGranted), nil)
	if !r.Schedule(reminderTask(&at), now) {
		t.Fatal("expected reminder to be armed")
	}

	select {
	case ev := <-engine.C():
		if ev.TaskID != "task-1" || ev.Title != ReminderTitle || ev.Body != "It's time for your task: Clean HVAC filter" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for reminder")
	}
}

func TestSchedulePastReminderIsLoggedAndDropped(t *testing.T) {
	var buf bytes.Buffer
	engine := scheduler.NewEngine(1)
	r := NewReminders(engine, nil, log.New(&buf, "", 0))

	now := time.Now()
	past := now.Add(-time.Minute)
	if r.Schedule(reminderTask(&past), now) {
		t.Fatal("expected past reminder to be abandoned")
	}
	if r.Schedule(reminderTask(&now), now) {
		t.Fatal("expected reminder at now to be abandoned")
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected nothing armed, got %d", engine.Pending())
	}
	if !strings.Contains(buf.String(), "in the past") {
		t.Fatalf("expected past-time log line, got %q", buf.String())
	}
}

func TestScheduleIgnoresTasksWithoutNotifications(t *testing.T) {
	engine := scheduler.NewEngine(1)
	r := NewReminders(engine, nil, nil)
	if r.Schedule(reminderTask(nil), time.Now()) {
		t.Fatal("expected no reminder for task without notifications")
	}
}

func TestDeliverRequiresGrant(t *testing.T) {
	ev := scheduler.ReminderEvent{ID: "rem-1", Title: ReminderTitle, Body: ReminderBody("Test smoke detectors")}

	denied := NewMemoryPlatform(PermissionDenied, PermissionDenied)
	if err := NewReminders(nil, denied, nil).Deliver(ev); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(denied.Shown()) != 0 {
		t.Fatal("expected nothing shown without grant")
	}

	granted := NewMemoryPlatform(PermissionGranted, PermissionGranted)
	if err := NewReminders(nil, granted, nil).Deliver(ev); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	shown := granted.Shown()
	if len(shown) != 1 || shown[0].Body != "It's time for your task: Test smoke detectors" {
		t.Fatalf("unexpected shown notifications: %+v", shown)
	}
}

func TestLogEmailSenderRecords(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogEmailSender(log.New(&buf, "", 0))
	s.SendReminderEmail(model.MaintenanceTask{ID: "t1", Name: "Inspect plumbing"})
	if got := s.Sent(); len(got) != 1 || got[0] != "t1" {
		t.Fatalf("unexpected sent list: %v", got)
	}
	if !strings.Contains(buf.String(), "Inspect plumbing") {
		t.Fatalf("expected log line, got %q", buf.String())
	}
}
