package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/storage"
)

// TaskInput is the add-task form. Dates are ISO calendar dates; ReminderAt
// accepts RFC 3339 or model.ReminderLayout in the local zone.
type TaskInput struct {
	Name                 string
	Category             model.Category
	PropertyID           string
	LastCompleted        string
	NextDue              string
	NotificationsEnabled bool
	ReminderAt           string
	LastBilledAmount     string
}

func (a *App) buildTask(in TaskInput) (model.MaintenanceTask, error) {
	name := strings.TrimSpace(in.Name)
	propertyID := strings.TrimSpace(in.PropertyID)
	if name == "" || propertyID == "" || strings.TrimSpace(in.NextDue) == "" || strings.TrimSpace(in.LastCompleted) == "" {
		return model.MaintenanceTask{}, invalid("task", "Please fill out all task details.")
	}
	lastCompleted, err := model.ParseDate(in.LastCompleted)
	if err != nil {
		return model.MaintenanceTask{}, invalid("lastCompleted", "Last completed must be a date like 2024-06-01.")
	}
	nextDue, err := model.ParseDate(in.NextDue)
	if err != nil {
		return model.MaintenanceTask{}, invalid("nextDue", "Next due must be a date like 2024-09-01.")
	}
	category := in.Category
	if category == "" {
		category = model.Categories()[0]
	}
	if !category.IsValid() {
		return model.MaintenanceTask{}, invalid("category", fmt.Sprintf("Unknown category %q.", category))
	}

	task := model.MaintenanceTask{
		Name:                 name,
		Category:             category,
		LastCompleted:        lastCompleted,
		NextDue:              nextDue,
		PropertyID:           propertyID,
		NotificationsEnabled: in.NotificationsEnabled,
	}
	if in.NotificationsEnabled {
		at, err := model.ParseReminder(in.ReminderAt, a.deps.Now().Location())
		if err != nil {
			if errors.Is(err, model.ErrReminderRequired) {
				return model.MaintenanceTask{}, invalid("reminderAt", "Please set a reminder date and time.")
			}
			return model.MaintenanceTask{}, invalid("reminderAt", "Reminder must look like 2024-08-31T09:00.")
		}
		task.ReminderAt = &at
	}
	if raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(in.LastBilledAmount), "$")); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount < 0 {
			return model.MaintenanceTask{}, invalid("lastBilledAmount", "Last billed amount must be a non-negative number.")
		}
		task.LastBilledAmount = &amount
	}
	return task, nil
}

// AddTask validates the form, stores the task at 0 % and arms its reminder
// when one was requested, then returns to home.
func (a *App) AddTask(ctx context.Context, in TaskInput) (model.MaintenanceTask, error) {
	task, err := a.buildTask(in)
	if err != nil {
		return model.MaintenanceTask{}, err
	}
	task.ID = a.deps.NewID()
	task.CompletionPercentage = 0
	if err := task.Validate(); err != nil {
		return model.MaintenanceTask{}, invalid("task", err.Error())
	}

	now := a.deps.Now()
	if a.deps.Repo != nil {
		if err := a.deps.Repo.CreateTask(ctx, storage.TaskFromModel(task, now)); err != nil {
			return model.MaintenanceTask{}, fmt.Errorf("save task: %w", err)
		}
	}
	a.tasks = append(a.tasks, task)
	a.deps.Logger.Printf("[App] Added task %q for property %s", task.Name, task.PropertyID)
	if task.NotificationsEnabled && a.deps.Reminders != nil {
		a.deps.Reminders.Schedule(task, now)
	}
	a.Navigate(ScreenHome, NavigationPayload{})
	return task, nil
}

func (a *App) indexOf(id string) int {
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateTask replaces the task with the same id, clamping its completion
// percentage. Unknown ids are ignored; an invalid replacement is rejected
// with a *ValidationError and the stored task is kept.
func (a *App) UpdateTask(ctx context.Context, task model.MaintenanceTask) error {
	idx := a.indexOf(task.ID)
	if idx < 0 {
		return nil
	}
	task.CompletionPercentage = model.ClampPercentage(task.CompletionPercentage)
	if err := task.Validate(); err != nil {
		return invalid("task", err.Error())
	}
	if err := a.persist(ctx, task); err != nil {
		return err
	}
	a.tasks[idx] = task
	return nil
}

func (a *App) SetCompletion(ctx context.Context, id string, pct int) error {
	task, ok := a.Task(id)
	if !ok {
		return nil
	}
	task.CompletionPercentage = pct
	return a.UpdateTask(ctx, task)
}

// ToggleTaskReminder flips the email reminder flag. Turning it on sends the
// reminder email once; turning it off sends nothing.
func (a *App) ToggleTaskReminder(ctx context.Context, id string) (bool, error) {
	idx := a.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	task := a.tasks[idx]
	task.ReminderEnabled = !task.ReminderEnabled
	if err := a.persist(ctx, task); err != nil {
		return !task.ReminderEnabled, err
	}
	a.tasks[idx] = task
	if task.ReminderEnabled && a.deps.Email != nil {
		a.deps.Email.SendReminderEmail(task)
	}
	return task.ReminderEnabled, nil
}

func (a *App) persist(ctx context.Context, task model.MaintenanceTask) error {
	if a.deps.Repo == nil {
		return nil
	}
	if err := a.deps.Repo.UpdateTask(ctx, storage.TaskFromModel(task, a.deps.Now())); err != nil {
		return fmt.Errorf("save task %s: %w", task.ID, err)
	}
	return nil
}

func (a *App) Task(id string) (model.MaintenanceTask, bool) {
	idx := a.indexOf(id)
	if idx < 0 {
		return model.MaintenanceTask{}, false
	}
	return a.tasks[idx], true
}

// SelectedTask resolves the selected task and the property it points at.
func (a *App) SelectedTask() (model.MaintenanceTask, model.Property, bool) {
	task, ok := a.Task(a.nav.SelectedTaskID)
	if !ok {
		return model.MaintenanceTask{}, model.Property{}, false
	}
	p, ok := a.Property(task.PropertyID)
	if !ok {
		return model.MaintenanceTask{}, model.Property{}, false
	}
	return task, p, true
}

// HomeTasks lists every task by next due date.
func (a *App) HomeTasks() []model.MaintenanceTask {
	return model.SortByNextDue(a.tasks)
}

// PropertyTasks lists the tasks that reference propertyID, by next due date.
func (a *App) PropertyTasks(propertyID string) []model.MaintenanceTask {
	out := make([]model.MaintenanceTask, 0)
	for _, t := range a.tasks {
		if t.PropertyID == propertyID {
			out = append(out, t)
		}
	}
	return model.SortByNextDue(out)
}

func (a *App) NextDueTask() (model.MaintenanceTask, bool) {
	return model.NextDueTask(a.tasks)
}
