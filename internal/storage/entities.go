package storage

import "time"

type Property struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
}

// Task is a stored maintenance task. Dates are kept as ISO calendar dates.
type Task struct {
	ID                   string
	PropertyID           string
	Name                 string
	Category             string
	LastCompleted        string
	NextDue              string
	NotificationsEnabled bool
	ReminderAt           *time.Time
	ReminderEnabled      bool
	CompletionPercentage int
	LastBilledAmount     *float64
	CreatedAt            time.Time
}

type PropertyListFilter struct {
	Limit  int
	Offset int
}

type TaskListFilter struct {
	PropertyID string
	Limit      int
	Offset     int
}
