package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	// PRAGMAs apply per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens path and brings the schema up to date.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateProperty(ctx context.Context, in Property) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO properties (id, name, address, created_at)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.Name, in.Address, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetProperty(ctx context.Context, id string) (Property, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, address, created_at
		FROM properties WHERE id = ?`, id)
	item, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Property{}, ErrNotFound
		}
		return Property{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) ListProperties(ctx context.Context, filter PropertyListFilter) ([]Property, error) {
	query := `SELECT id, name, address, created_at FROM properties ORDER BY created_at ASC, rowid ASC`
	args := make([]any, 0, 2)
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Property, 0)
	for rows.Next() {
		item, scanErr := scanProperty(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const taskColumns = `id, property_id, name, category, last_completed, next_due, notifications_enabled,
	reminder_at, reminder_enabled, completion_percentage, last_billed_amount, created_at`

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.PropertyID, in.Name, in.Category, in.LastCompleted, in.NextDue, boolInt(in.NotificationsEnabled),
		nullTime(in.ReminderAt), boolInt(in.ReminderEnabled), in.CompletionPercentage, nullFloat(in.LastBilledAmount), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

// UpdateTask rewrites every mutable column. The owning property and the
// creation time never change.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?, category = ?, last_completed = ?, next_due = ?, notifications_enabled = ?,
			reminder_at = ?, reminder_enabled = ?, completion_percentage = ?, last_billed_amount = ?
		WHERE id = ?`,
		in.Name, in.Category, in.LastCompleted, in.NextDue, boolInt(in.NotificationsEnabled),
		nullTime(in.ReminderAt), boolInt(in.ReminderEnabled), in.CompletionPercentage, nullFloat(in.LastBilledAmount), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// ListTasks returns tasks in insertion order.
func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	args := make([]any, 0, 3)
	if filter.PropertyID != "" {
		query += ` WHERE property_id = ?`
		args = append(args, filter.PropertyID)
	}
	query += ` ORDER BY created_at ASC, rowid ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(s scanner) (Property, error) {
	var out Property
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Address, &created); err != nil {
		return Property{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Property{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var notifications int
	var reminder sql.NullString
	var reminderEnabled int
	var billed sql.NullFloat64
	var created string
	if err := s.Scan(&out.ID, &out.PropertyID, &out.Name, &out.Category, &out.LastCompleted, &out.NextDue,
		&notifications, &reminder, &reminderEnabled, &out.CompletionPercentage, &billed, &created); err != nil {
		return Task{}, err
	}
	reminderAt, err := parseNullableTime(reminder)
	if err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.NotificationsEnabled = notifications == 1
	out.ReminderAt = reminderAt
	out.ReminderEnabled = reminderEnabled == 1
	if billed.Valid {
		amount := billed.Float64
		out.LastBilledAmount = &amount
	}
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
