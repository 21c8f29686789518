package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrReminderRequired  = errors.New("model: reminder time is required when notifications are enabled")
	ErrInvalidPercentage = errors.New("model: completion percentage out of range")
	ErrNegativeAmount    = errors.New("model: billed amount must not be negative")
)

// MaintenanceTask is a recurring maintenance activity tied to a property.
// PropertyID is a soft reference: the property may not exist.
type MaintenanceTask struct {
	ID                   string
	Name                 string
	Category             Category
	LastCompleted        Date
	NextDue              Date
	PropertyID           string
	NotificationsEnabled bool
	ReminderAt           *time.Time
	ReminderEnabled      bool
	CompletionPercentage int
	LastBilledAmount     *float64
}

func (t MaintenanceTask) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: task name is required")
	}
	if strings.TrimSpace(t.PropertyID) == "" {
		return errors.New("model: task property_id is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.LastCompleted.IsZero() {
		return errors.New("model: task last_completed is required")
	}
	if t.NextDue.IsZero() {
		return errors.New("model: task next_due is required")
	}
	if t.NotificationsEnabled && (t.ReminderAt == nil || t.ReminderAt.IsZero()) {
		return ErrReminderRequired
	}
	if t.CompletionPercentage < 0 || t.CompletionPercentage > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidPercentage, t.CompletionPercentage)
	}
	if t.LastBilledAmount != nil && *t.LastBilledAmount < 0 {
		return fmt.Errorf("%w: %.2f", ErrNegativeAmount, *t.LastBilledAmount)
	}
	return nil
}

func ClampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// SortByNextDue returns a copy ordered by NextDue ascending. Equal dates keep
// insertion order.
func SortByNextDue(tasks []MaintenanceTask) []MaintenanceTask {
	out := make([]MaintenanceTask, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextDue.Before(out[j].NextDue)
	})
	return out
}

func NextDueTask(tasks []MaintenanceTask) (MaintenanceTask, bool) {
	if len(tasks) == 0 {
		return MaintenanceTask{}, false
	}
	return SortByNextDue(tasks)[0], true
}

// CountByCategory returns per-category task counts, omitting empty categories.
func CountByCategory(tasks []MaintenanceTask) map[Category]int {
	out := make(map[Category]int)
	for _, t := range tasks {
		out[t.Category]++
	}
	return out
}
