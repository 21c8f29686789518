package notify

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/scheduler"
)

const ReminderTitle = "Home Maintenance Reminder"

func ReminderBody(taskName string) string {
	return fmt.Sprintf("It's time for your task: %s", taskName)
}

// Reminders arms one local notification per task on the scheduler engine and
// shows it when the engine fires. Nothing here survives a restart.
type Reminders struct {
	engine   *scheduler.Engine
	platform Platform
	logger   *log.Logger
}

func NewReminders(engine *scheduler.Engine, platform Platform, logger *log.Logger) *Reminders {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Reminders{engine: engine, platform: platform, logger: logger}
}

// Schedule arms a reminder for task when notifications are enabled and the
// reminder lies in the future. A past reminder is logged and dropped.
func (r *Reminders) Schedule(task model.MaintenanceTask, now time.Time) bool {
	if !task.NotificationsEnabled || task.ReminderAt == nil {
		return false
	}
	delay := task.ReminderAt.Sub(now)
	if delay <= 0 {
		r.logger.Printf("[Reminders] Could not schedule notification for %q as the reminder time is in the past", task.Name)
		return false
	}
	if r.engine == nil {
		r.logger.Printf("[Reminders] No scheduler configured, reminder for %q dropped", task.Name)
		return false
	}
	err := r.engine.Schedule(scheduler.ReminderEvent{
		ID:        "rem-" + task.ID,
		TaskID:    task.ID,
		Title:     ReminderTitle,
		Body:      ReminderBody(task.Name),
		TriggerAt: *task.ReminderAt,
	})
	if err != nil {
		r.logger.Printf("[Reminders] Error scheduling reminder for %q: %v", task.Name, err)
		return false
	}
	r.logger.Printf("[Reminders] Scheduling notification for %q in %s", task.Name, delay.Round(time.Second))
	return true
}

// Deliver shows a fired reminder. Permission is checked at fire time.
func (r *Reminders) Deliver(ev scheduler.ReminderEvent) error {
	if r.platform == nil || r.platform.QueryPermission() != PermissionGranted {
		r.logger.Printf("[Reminders] Permission not granted, reminder %s not shown", ev.ID)
		return ErrPermissionDenied
	}
	if err := r.platform.Show(ev.Title, ev.Body); err != nil {
		r.logger.Printf("[Reminders] Error showing reminder %s: %v", ev.ID, err)
		return fmt.Errorf("notify: show reminder: %w", err)
	}
	return nil
}
