package priority

import (
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

// RecurrenceHorizonDays bounds how far ahead ExpandRecurring generates.
const RecurrenceHorizonDays = 7

// ExpandRecurring generates the next occurrence of each recurring template.
// The template's due date is stepped forward by its rule until it is not
// before today; an occurrence is produced when that date falls within the
// horizon and no existing child of the template already has it. Children
// copy title, priority, and estimate, and carry no rule of their own.
func ExpandRecurring(templates []*domain.Task, existing []*domain.Task, now time.Time) []*domain.Task {
	today := StartOfDay(now)
	horizon := today.AddDate(0, 0, RecurrenceHorizonDays)

	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		if t.ParentTaskID == nil || t.DueDate == nil {
			continue
		}
		seen[childKey(*t.ParentTaskID, *t.DueDate)] = true
	}

	var out []*domain.Task
	for _, tmpl := range templates {
		if !tmpl.IsRecurringTemplate() || tmpl.DueDate == nil {
			continue
		}
		rule := *tmpl.RecurrenceRule
		if rule.Frequency != domain.RecurDaily && rule.Frequency != domain.RecurWeekly {
			continue
		}

		next := StartOfDay(tmpl.DueDate.In(today.Location()))
		for next.Before(today) {
			next = rule.Step(next)
		}
		if next.After(horizon) {
			continue
		}
		key := childKey(tmpl.ID, next)
		if seen[key] {
			continue
		}
		seen[key] = true

		parentID := tmpl.ID
		due := next
		out = append(out, &domain.Task{
			UserID:       tmpl.UserID,
			Title:        tmpl.Title,
			DueDate:      &due,
			Priority:     tmpl.Priority,
			EstMinutes:   tmpl.EstMinutes,
			ParentTaskID: &parentID,
		})
	}
	return out
}

func childKey(parentID string, due time.Time) string {
	return parentID + "|" + due.Format("2006-01-02")
}
