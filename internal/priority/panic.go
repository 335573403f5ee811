package priority

import (
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

const (
	reviewMinutes   = 45
	practiceMinutes = 60
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// PlanPanicSession turns each ranked assignment into two study tasks: a
// high-priority concept review due today and a medium-priority practice
// block due tomorrow. No calendar checks are made. IDs and timestamps are
// left for the caller.
func PlanPanicSession(top []RankedAssignment, now time.Time) []*domain.Task {
	today := StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	tasks := make([]*domain.Task, 0, 2*len(top))
	for _, item := range top {
		a := item.Assignment
		review, practice := today, tomorrow
		tasks = append(tasks,
			&domain.Task{
				UserID:     a.UserID,
				Title:      fmt.Sprintf("Review concepts for: %s", a.Title),
				DueDate:    &review,
				Priority:   domain.PriorityHigh,
				EstMinutes: reviewMinutes,
			},
			&domain.Task{
				UserID:     a.UserID,
				Title:      fmt.Sprintf("Practice problems for: %s", a.Title),
				DueDate:    &practice,
				Priority:   domain.PriorityMedium,
				EstMinutes: practiceMinutes,
			},
		)
	}
	return tasks
}
