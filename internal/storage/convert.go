package storage

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/flowo/internal/model"
)

func PropertyFromModel(p model.Property, createdAt time.Time) Property {
	return Property{ID: p.ID, Name: p.Name, Address: p.Address, CreatedAt: createdAt}
}

func (p Property) Model() model.Property {
	return model.Property{ID: p.ID, Name: p.Name, Address: p.Address}
}

func TaskFromModel(t model.MaintenanceTask, createdAt time.Time) Task {
	return Task{
		ID:                   t.ID,
		PropertyID:           t.PropertyID,
		Name:                 t.Name,
		Category:             t.Category.String(),
		LastCompleted:        t.LastCompleted.String(),
		NextDue:              t.NextDue.String(),
		NotificationsEnabled: t.NotificationsEnabled,
		ReminderAt:           t.ReminderAt,
		ReminderEnabled:      t.ReminderEnabled,
		CompletionPercentage: t.CompletionPercentage,
		LastBilledAmount:     t.LastBilledAmount,
		CreatedAt:            createdAt,
	}
}

func (t Task) Model() (model.MaintenanceTask, error) {
	category, err := model.ParseCategory(t.Category)
	if err != nil {
		return model.MaintenanceTask{}, fmt.Errorf("task %s: %w", t.ID, err)
	}
	last, err := model.ParseDate(t.LastCompleted)
	if err != nil {
		return model.MaintenanceTask{}, fmt.Errorf("task %s last_completed: %w", t.ID, err)
	}
	next, err := model.ParseDate(t.NextDue)
	if err != nil {
		return model.MaintenanceTask{}, fmt.Errorf("task %s next_due: %w", t.ID, err)
	}
	return model.MaintenanceTask{
		ID:                   t.ID,
		Name:                 t.Name,
		Category:             category,
		LastCompleted:        last,
		NextDue:              next,
		PropertyID:           t.PropertyID,
		NotificationsEnabled: t.NotificationsEnabled,
		ReminderAt:           t.ReminderAt,
		ReminderEnabled:      t.ReminderEnabled,
		CompletionPercentage: t.CompletionPercentage,
		LastBilledAmount:     t.LastBilledAmount,
	}, nil
}
