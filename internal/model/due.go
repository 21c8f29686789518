package model

import (
	"fmt"
	"math"
	"time"
)

type DueKind string

const (
	DueOverdue  DueKind = "Overdue"
	DueToday    DueKind = "Today"
	DueTomorrow DueKind = "Tomorrow"
	DueLater    DueKind = "Later"
)

// DueStatus is derived from a due date and the current instant; it is never
// stored. Days is always non-negative: for overdue tasks it is how late they are.
type DueStatus struct {
	Kind DueKind
	Days int
}

// DaysRemaining is ceil((midnight(nextDue) - now) / 24h), with midnight taken
// in now's location.
func DaysRemaining(nextDue Date, now time.Time) int {
	diff := nextDue.Midnight(now.Location()).Sub(now)
	return int(math.Ceil(float64(diff) / float64(24*time.Hour)))
}

func ClassifyDue(nextDue Date, now time.Time) DueStatus {
	days := DaysRemaining(nextDue, now)
	switch {
	case days < 0:
		return DueStatus{Kind: DueOverdue, Days: -days}
	case days == 0:
		return DueStatus{Kind: DueToday}
	case days == 1:
		return DueStatus{Kind: DueTomorrow, Days: 1}
	default:
		return DueStatus{Kind: DueLater, Days: days}
	}
}

func (s DueStatus) String() string {
	switch s.Kind {
	case DueOverdue:
		return fmt.Sprintf("Overdue by %d day(s)", s.Days)
	case DueToday:
		return "Due Today"
	case DueTomorrow:
		return "Due Tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", s.Days)
	}
}

// DueUrgency maps days remaining onto a 0-100 bar that fills over the last
// 30 days before the due date.
func DueUrgency(daysRemaining int) int {
	v := 100 - float64(daysRemaining)/30*100
	return ClampPercentage(int(math.Round(math.Max(0, v))))
}
