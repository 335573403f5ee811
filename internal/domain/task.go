package domain

import (
	"fmt"
	"time"
)

// RecurrenceRule describes how a template task repeats.
type RecurrenceRule struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	Interval  int                 `json:"interval,omitempty"`
}

// Step returns the date that follows d under the rule.
func (r RecurrenceRule) Step(d time.Time) time.Time {
	interval := r.Interval
	if interval <= 0 {
		interval = 1
	}
	switch r.Frequency {
	case RecurWeekly:
		return d.AddDate(0, 0, 7*interval)
	default:
		return d.AddDate(0, 0, interval)
	}
}

type Task struct {
	ID             string
	UserID         string
	Title          string
	DueDate        *time.Time
	Priority       TaskPriority
	EstMinutes     int
	Completed      bool
	RecurrenceRule *RecurrenceRule
	ParentTaskID   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsRecurringTemplate reports whether the task is a recurrence parent.
// Generated children never carry a rule themselves.
func (t *Task) IsRecurringTemplate() bool {
	return t.RecurrenceRule != nil && t.ParentTaskID == nil
}

// Toggle flips completion and stamps UpdatedAt.
func (t *Task) Toggle(now time.Time) {
	t.Completed = !t.Completed
	t.UpdatedAt = now
}

// Validate checks required fields and enum values.
func (t *Task) Validate() error {
	if t.Title == "" {
		return NewValidationError("title", "is required")
	}
	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return NewValidationError("priority", fmt.Sprintf("invalid value %q", t.Priority))
	}
	if t.EstMinutes < 0 {
		return NewValidationError("est_minutes", "must not be negative")
	}
	if r := t.RecurrenceRule; r != nil {
		if r.Frequency != RecurDaily && r.Frequency != RecurWeekly {
			return NewValidationError("recurrence.frequency", fmt.Sprintf("invalid value %q", r.Frequency))
		}
		if t.DueDate == nil {
			return NewValidationError("due_date", "is required for recurring tasks")
		}
	}
	return nil
}
