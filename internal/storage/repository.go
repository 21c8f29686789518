package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateProperty(ctx context.Context, in Property) error
	GetProperty(ctx context.Context, id string) (Property, error)
	ListProperties(ctx context.Context, filter PropertyListFilter) ([]Property, error)

	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)
}
