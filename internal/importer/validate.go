package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateSnapshot checks field constraints and cross-references before
// conversion. It returns every problem found.
func ValidateSnapshot(s *Snapshot) []error {
	var errs []error
	if err := structValidator.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []error{err}
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Errorf("%s: failed %s", fe.Namespace(), describeTag(fe)))
		}
	}

	courseIDs := make(map[string]bool, len(s.Courses))
	externals := make(map[string]bool)
	for i, c := range s.Courses {
		if courseIDs[c.ID] {
			errs = append(errs, fmt.Errorf("courses[%d].id: duplicate id %q", i, c.ID))
		}
		courseIDs[c.ID] = true
		errs = append(errs, validateCategories(i, c.Categories)...)
		if err := checkExternal(externals, "course", c.External); err != nil {
			errs = append(errs, fmt.Errorf("courses[%d].external: %w", i, err))
		}
	}

	assignmentIDs := make(map[string]bool, len(s.Assignments))
	for i, a := range s.Assignments {
		if assignmentIDs[a.ID] {
			errs = append(errs, fmt.Errorf("assignments[%d].id: duplicate id %q", i, a.ID))
		}
		assignmentIDs[a.ID] = true
		if a.CourseID != "" && !courseIDs[a.CourseID] {
			errs = append(errs, fmt.Errorf("assignments[%d].course_id: unknown course %q", i, a.CourseID))
		}
		if a.DueDate != nil {
			if _, err := time.Parse(time.RFC3339, *a.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("assignments[%d].due_date: invalid timestamp %q (expected RFC3339)", i, *a.DueDate))
			}
		}
		if err := checkExternal(externals, "assignment", a.External); err != nil {
			errs = append(errs, fmt.Errorf("assignments[%d].external: %w", i, err))
		}
	}

	taskIDs := make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		taskIDs[t.ID] = true
	}
	seenTasks := make(map[string]bool, len(s.Tasks))
	for i, t := range s.Tasks {
		if seenTasks[t.ID] {
			errs = append(errs, fmt.Errorf("tasks[%d].id: duplicate id %q", i, t.ID))
		}
		seenTasks[t.ID] = true
		if t.DueDate != nil {
			if _, err := time.Parse(dateLayout, *t.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("tasks[%d].due_date: invalid date %q (expected YYYY-MM-DD)", i, *t.DueDate))
			}
		}
		if t.Recurrence != nil && t.DueDate == nil {
			errs = append(errs, fmt.Errorf("tasks[%d].due_date: required for recurring tasks", i))
		}
		if t.ParentTaskID != nil {
			switch {
			case *t.ParentTaskID == t.ID:
				errs = append(errs, fmt.Errorf("tasks[%d].parent_task_id: task cannot be its own parent", i))
			case !taskIDs[*t.ParentTaskID]:
				errs = append(errs, fmt.Errorf("tasks[%d].parent_task_id: unknown task %q", i, *t.ParentTaskID))
			}
		}
	}
	return errs
}

func validateCategories(course int, cats []CategoryRecord) []error {
	var errs []error
	seen := make(map[string]bool, len(cats))
	for j, cat := range cats {
		if cat.ID == "" {
			continue
		}
		if seen[cat.ID] {
			errs = append(errs, fmt.Errorf("courses[%d].categories[%d].id: duplicate id %q", course, j, cat.ID))
		}
		seen[cat.ID] = true
	}
	return errs
}

func checkExternal(seen map[string]bool, entity string, ext *ExternalRecord) error {
	if ext == nil || ext.ExternalID == "" {
		return nil
	}
	key := entity + ":" + ext.Provider + ":" + ext.ExternalID
	if seen[key] {
		return fmt.Errorf("duplicate %s reference %s/%s", ext.Provider, entity, ext.ExternalID)
	}
	seen[key] = true
	return nil
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
