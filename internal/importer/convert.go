package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

// Converted holds domain records built from a validated snapshot.
type Converted struct {
	Courses     []*domain.Course
	Assignments []*domain.Assignment
	Tasks       []*domain.Task
}

// FromDomain builds a snapshot of the given records.
func FromDomain(courses []*domain.Course, assignments []*domain.Assignment, tasks []*domain.Task, now time.Time) *Snapshot {
	s := &Snapshot{
		Version:     SnapshotVersion,
		ExportedAt:  now.UTC().Format(time.RFC3339),
		Courses:     make([]CourseRecord, 0, len(courses)),
		Assignments: make([]AssignmentRecord, 0, len(assignments)),
		Tasks:       make([]TaskRecord, 0, len(tasks)),
	}
	for _, c := range courses {
		rec := CourseRecord{
			ID:          c.ID,
			Name:        c.Name,
			Code:        c.Code,
			Credits:     c.Credits,
			Color:       c.Color,
			Categories:  make([]CategoryRecord, 0, len(c.Categories)),
			External:    externalRecord(c.ExternalRef),
			SyncEnabled: c.SyncEnabled,
		}
		for _, t := range c.GradingScale {
			rec.GradingScale = append(rec.GradingScale, ThresholdRecord{Label: t.Label, MinPercent: t.MinPercent})
		}
		for _, cat := range c.Categories {
			rec.Categories = append(rec.Categories, CategoryRecord{ID: cat.ID, Name: cat.Name, Weight: cat.Weight})
		}
		s.Courses = append(s.Courses, rec)
	}
	for _, a := range assignments {
		rec := AssignmentRecord{
			ID:             a.ID,
			CourseID:       a.CourseID,
			CategoryID:     a.CategoryID,
			Title:          a.Title,
			Details:        a.Details,
			PointsPossible: a.PointsPossible,
			External:       externalRecord(a.ExternalRef),
		}
		if a.DueDate != nil {
			d := a.DueDate.UTC().Format(time.RFC3339)
			rec.DueDate = &d
		}
		if a.PointsEarned != nil {
			v := *a.PointsEarned
			rec.PointsEarned = &v
		}
		s.Assignments = append(s.Assignments, rec)
	}
	for _, t := range tasks {
		rec := TaskRecord{
			ID:         t.ID,
			Title:      t.Title,
			Priority:   string(t.Priority),
			EstMinutes: t.EstMinutes,
			Completed:  t.Completed,
		}
		if t.DueDate != nil {
			d := t.DueDate.Format(dateLayout)
			rec.DueDate = &d
		}
		if t.RecurrenceRule != nil {
			rec.Recurrence = &RecurrenceRecord{Frequency: string(t.RecurrenceRule.Frequency), Interval: t.RecurrenceRule.Interval}
		}
		if t.ParentTaskID != nil {
			p := *t.ParentTaskID
			rec.ParentTaskID = &p
		}
		s.Tasks = append(s.Tasks, rec)
	}
	return s
}

func externalRecord(ref *domain.ExternalRef) *ExternalRecord {
	if ref == nil || ref.ExternalID == "" {
		return nil
	}
	return &ExternalRecord{Provider: string(ref.Provider), ExternalID: ref.ExternalID, Status: ref.Status}
}

func externalRef(rec *ExternalRecord) *domain.ExternalRef {
	if rec == nil {
		return nil
	}
	return &domain.ExternalRef{Provider: domain.Provider(rec.Provider), ExternalID: rec.ExternalID, Status: rec.Status}
}

// ToDomain converts a snapshot into records owned by userID. Call
// ValidateSnapshot first; ToDomain only reports parse failures. Tasks are
// ordered so that parents precede their children.
func (s *Snapshot) ToDomain(userID string, now time.Time) (*Converted, error) {
	out := &Converted{}
	for _, rec := range s.Courses {
		c := &domain.Course{
			ID:          rec.ID,
			UserID:      userID,
			Name:        rec.Name,
			Code:        rec.Code,
			Credits:     rec.Credits,
			Color:       rec.Color,
			Categories:  make([]domain.Category, 0, len(rec.Categories)),
			ExternalRef: externalRef(rec.External),
			SyncEnabled: rec.SyncEnabled,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, t := range rec.GradingScale {
			c.GradingScale = append(c.GradingScale, domain.GradeThreshold{Label: t.Label, MinPercent: t.MinPercent})
		}
		for _, cat := range rec.Categories {
			c.Categories = append(c.Categories, domain.Category{ID: cat.ID, Name: cat.Name, Weight: cat.Weight})
		}
		out.Courses = append(out.Courses, c)
	}

	for _, rec := range s.Assignments {
		a := &domain.Assignment{
			ID:             rec.ID,
			UserID:         userID,
			CourseID:       rec.CourseID,
			CategoryID:     rec.CategoryID,
			Title:          rec.Title,
			Details:        rec.Details,
			PointsPossible: rec.PointsPossible,
			ExternalRef:    externalRef(rec.External),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if rec.DueDate != nil {
			d, err := time.Parse(time.RFC3339, *rec.DueDate)
			if err != nil {
				return nil, fmt.Errorf("assignment %s due_date: %w", rec.ID, err)
			}
			a.DueDate = &d
		}
		if rec.PointsEarned != nil {
			v := *rec.PointsEarned
			a.PointsEarned = &v
		}
		out.Assignments = append(out.Assignments, a)
	}

	var parents, children []*domain.Task
	for _, rec := range s.Tasks {
		t := &domain.Task{
			ID:         rec.ID,
			UserID:     userID,
			Title:      rec.Title,
			Priority:   domain.TaskPriority(rec.Priority),
			EstMinutes: rec.EstMinutes,
			Completed:  rec.Completed,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if rec.DueDate != nil {
			d, err := time.Parse(dateLayout, *rec.DueDate)
			if err != nil {
				return nil, fmt.Errorf("task %s due_date: %w", rec.ID, err)
			}
			t.DueDate = &d
		}
		if rec.Recurrence != nil {
			t.RecurrenceRule = &domain.RecurrenceRule{
				Frequency: domain.RecurrenceFrequency(rec.Recurrence.Frequency),
				Interval:  rec.Recurrence.Interval,
			}
		}
		if rec.ParentTaskID != nil {
			p := *rec.ParentTaskID
			t.ParentTaskID = &p
			children = append(children, t)
			continue
		}
		parents = append(parents, t)
	}
	out.Tasks = append(parents, children...)
	return out, nil
}
