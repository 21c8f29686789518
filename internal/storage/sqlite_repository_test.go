package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/flowo/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "flowo-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(t.Context(), db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestPropertyCreateGetList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	for i, p := range []Property{
		{ID: "p1", Name: "Main Residence", Address: "123 Maple St"},
		{ID: "p2", Name: "Beach House", Address: "456 Ocean Ave"},
	} {
		p.CreatedAt = created.Add(time.Duration(i) * time.Minute)
		if err := repo.CreateProperty(ctx, p); err != nil {
			t.Fatalf("create property %s: %v", p.ID, err)
		}
	}

	got, err := repo.GetProperty(ctx, "p2")
	if err != nil {
		t.Fatalf("get property: %v", err)
	}
	if got.Name != "Beach House" || !got.CreatedAt.Equal(created.Add(time.Minute)) {
		t.Fatalf("unexpected property: %#v", got)
	}

	list, err := repo.ListProperties(ctx, PropertyListFilter{})
	if err != nil {
		t.Fatalf("list properties: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p1" || list[1].ID != "p2" {
		t.Fatalf("unexpected property order: %#v", list)
	}

	page, err := repo.ListProperties(ctx, PropertyListFilter{Offset: 1})
	if err != nil {
		t.Fatalf("list with offset: %v", err)
	}
	if len(page) != 1 || page[0].ID != "p2" {
		t.Fatalf("unexpected offset page: %#v", page)
	}

	if _, err := repo.GetProperty(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")
	reminder := parseRFC3339(t, "2026-03-01T09:00:00Z")
	billed := 42.5

	for _, id := range []string{"p1", "p2"} {
		if err := repo.CreateProperty(ctx, Property{ID: id, Name: id, Address: "addr", CreatedAt: created}); err != nil {
			t.Fatalf("create property: %v", err)
		}
	}

	task := Task{
		ID:                   "t1",
		PropertyID:           "p1",
		Name:                 "Change water filter",
		Category:             "Water Filter Upgrade/Change",
		LastCompleted:        "2026-01-01",
		NextDue:              "2026-03-01",
		NotificationsEnabled: true,
		ReminderAt:           &reminder,
		CompletionPercentage: 0,
		LastBilledAmount:     &billed,
		CreatedAt:            created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	other := Task{
		ID: "t2", PropertyID: "p2", Name: "Inspect plumbing", Category: "Plumber",
		LastCompleted: "2026-01-10", NextDue: "2027-01-10", CreatedAt: created.Add(time.Second),
	}
	if err := repo.CreateTask(ctx, other); err != nil {
		t.Fatalf("create second task: %v", err)
	}

	got, err := repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.ReminderAt == nil || !got.ReminderAt.Equal(reminder) {
		t.Fatalf("reminder not round-tripped: %#v", got.ReminderAt)
	}
	if got.LastBilledAmount == nil || *got.LastBilledAmount != billed {
		t.Fatalf("billed amount not round-tripped: %#v", got.LastBilledAmount)
	}
	if !got.NotificationsEnabled || got.ReminderEnabled {
		t.Fatalf("unexpected flags: %#v", got)
	}

	task.CompletionPercentage = 60
	task.ReminderEnabled = true
	task.LastBilledAmount = nil
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}
	got, err = repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("get updated task: %v", err)
	}
	if got.CompletionPercentage != 60 || !got.ReminderEnabled || got.LastBilledAmount != nil {
		t.Fatalf("update not applied: %#v", got)
	}

	forP1, err := repo.ListTasks(ctx, TaskListFilter{PropertyID: "p1"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(forP1) != 1 || forP1[0].ID != "t1" {
		t.Fatalf("unexpected filtered list: %#v", forP1)
	}
	all, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list all tasks: %v", err)
	}
	if len(all) != 2 || all[0].ID != "t1" || all[1].ID != "t2" {
		t.Fatalf("unexpected insertion order: %#v", all)
	}

	if _, err := repo.GetTask(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	other.ID = "missing"
	if err := repo.UpdateTask(ctx, other); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update of unknown task should be ErrNotFound, got %v", err)
	}
}

func TestTaskAllowsDanglingProperty(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	err := repo.CreateTask(ctx, Task{
		ID: "orphan", PropertyID: "gone", Name: "x", Category: "Plumber",
		LastCompleted: "2026-01-01", NextDue: "2026-02-01", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("task with unknown property should be stored: %v", err)
	}
	got, err := repo.ListTasks(ctx, TaskListFilter{PropertyID: "gone"})
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected list: %#v, %v", got, err)
	}
}

func TestTaskCompletionPercentageCheck(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if err := repo.CreateProperty(ctx, Property{ID: "p1", Name: "n", Address: "a", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("create property: %v", err)
	}
	err := repo.CreateTask(ctx, Task{
		ID: "bad", PropertyID: "p1", Name: "x", Category: "Plumber",
		LastCompleted: "2026-01-01", NextDue: "2026-02-01", CompletionPercentage: 150, CreatedAt: time.Now(),
	})
	if err == nil {
		t.Fatalf("expected check constraint violation")
	}
}

func TestTaskModelConversion(t *testing.T) {
	reminder := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	in := model.MaintenanceTask{
		ID:                   "t1",
		Name:                 "Change water filter",
		Category:             model.CategoryWaterFilter,
		LastCompleted:        model.MustParseDate("2026-01-01"),
		NextDue:              model.MustParseDate("2026-03-01"),
		PropertyID:           "p1",
		NotificationsEnabled: true,
		ReminderAt:           &reminder,
		CompletionPercentage: 25,
	}
	row := TaskFromModel(in, reminder)
	if row.NextDue != "2026-03-01" || row.Category != "Water Filter Upgrade/Change" {
		t.Fatalf("unexpected row: %#v", row)
	}
	out, err := row.Model()
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	if out.NextDue != in.NextDue || out.Category != in.Category || out.CompletionPercentage != 25 {
		t.Fatalf("unexpected model: %#v", out)
	}

	row.Category = "Chimney Sweep"
	if _, err := row.Model(); !errors.Is(err, model.ErrInvalidCategory) {
		t.Fatalf("expected invalid category, got %v", err)
	}
}
