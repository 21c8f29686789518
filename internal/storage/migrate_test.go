package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(t.Context(), db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(t.Context(), db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(t.Context(), db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if err := repo.CreateProperty(t.Context(), Property{
		ID:        "prop-rt-1",
		Name:      "Roundtrip house",
		Address:   "1 Migration Way",
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetProperty(t.Context(), "prop-rt-1")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Name != "Roundtrip house" {
		t.Fatalf("unexpected name after roundtrip: %q", got.Name)
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()

	list, err := repo.ListTasks(t.Context(), TaskListFilter{})
	if err != nil {
		t.Fatalf("list on fresh db: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty db, got %d tasks", len(list))
	}
}

func TestMigrateUpTwiceKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	repo, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.CreateProperty(t.Context(), Property{
		ID: "p1", Name: "Cabin", Address: "2 Lake Rd", CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("create property: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	again, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer again.Close()
	if _, err := again.GetProperty(t.Context(), "p1"); err != nil {
		t.Fatalf("row lost after second migrate: %v", err)
	}
}
