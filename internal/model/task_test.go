package model

import (
	"errors"
	"testing"
	"time"
)

func validTask() MaintenanceTask {
	return MaintenanceTask{
		ID:            "task-1",
		Name:          "Change water filter",
		Category:      CategoryWaterFilter,
		LastCompleted: MustParseDate("2024-06-01"),
		NextDue:       MustParseDate("2024-09-01"),
		PropertyID:    "prop-1",
	}
}

func TestTaskValidateSuccess(t *testing.T) {
	if err := validTask().Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiresReminderWhenNotificationsEnabled(t *testing.T) {
	task := validTask()
	task.NotificationsEnabled = true
	if err := task.Validate(); !errors.Is(err, ErrReminderRequired) {
		t.Fatalf("expected ErrReminderRequired, got %v", err)
	}

	at := time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)
	task.ReminderAt = &at
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task with reminder, got %v", err)
	}
}

func TestTaskValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MaintenanceTask)
		want   error
	}{
		{"category", func(m *MaintenanceTask) { m.Category = Category("Roofing") }, ErrInvalidCategory},
		{"percentage", func(m *MaintenanceTask) { m.CompletionPercentage = 101 }, ErrInvalidPercentage},
		{"amount", func(m *MaintenanceTask) { m.LastBilledAmount = Ref(-1.5) }, ErrNegativeAmount},
	}
	for _, tc := range cases {
		task := validTask()
		tc.mutate(&task)
		if err := task.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	task := validTask()
	task.Name = "  "
	if err := task.Validate(); err == nil || err.Error() != "model: task name is required" {
		t.Fatalf("unexpected error for blank name: %v", err)
	}
}

func TestClampPercentage(t *testing.T) {
	for in, want := range map[int]int{-20: 0, 0: 0, 55: 55, 100: 100, 250: 100} {
		if got := ClampPercentage(in); got != want {
			t.Fatalf("ClampPercentage(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSortByNextDueIsStable(t *testing.T) {
	tasks := []MaintenanceTask{
		{ID: "late", NextDue: MustParseDate("2025-01-10")},
		{ID: "tie-a", NextDue: MustParseDate("2024-09-01")},
		{ID: "early", NextDue: MustParseDate("2024-08-15")},
		{ID: "tie-b", NextDue: MustParseDate("2024-09-01")},
	}
	sorted := SortByNextDue(tasks)
	want := []string{"early", "tie-a", "tie-b", "late"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("sorted[%d] = %s, want %s", i, sorted[i].ID, id)
		}
	}
	if tasks[0].ID != "late" {
		t.Fatal("expected input slice to be left untouched")
	}

	next, ok := NextDueTask(tasks)
	if !ok || next.ID != "early" {
		t.Fatalf("unexpected next due task: %+v ok=%v", next, ok)
	}
	if _, ok := NextDueTask(nil); ok {
		t.Fatal("expected no next task for empty list")
	}
}

func TestUserMergeAndGreeting(t *testing.T) {
	u := User{UID: "u1", DisplayName: Ref("Ada Lovelace"), Email: Ref("ada@example.com")}
	if got := u.Greeting(); got != "Ada" {
		t.Fatalf("unexpected greeting: %q", got)
	}
	merged := u.Merge(UserPatch{Email: Ref("countess@example.com")})
	if Deref(merged.Email) != "countess@example.com" || Deref(merged.DisplayName) != "Ada Lovelace" {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if Deref(u.Email) != "ada@example.com" {
		t.Fatal("merge must not mutate the receiver")
	}
	if got := (User{UID: "u2", Email: Ref("bob@example.com")}).Greeting(); got != "bob" {
		t.Fatalf("unexpected email greeting: %q", got)
	}
}
