package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/semester/internal/domain"
)

// resolveID matches input against ids: an exact ID first, then a unique
// prefix.
func resolveID(entity, input string, ids []string) (string, error) {
	if input == "" {
		return "", domain.NewValidationError(entity, "ID is required")
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", domain.NewNotFoundError(entity, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", entity, input, len(matches))
	}
}

// resolveCourseID accepts a course code (case-insensitive), a full ID, or
// an ID prefix.
func resolveCourseID(ctx context.Context, app *App, input string) (string, error) {
	courses, err := app.Courses.List(ctx)
	if err != nil {
		return "", err
	}

	var byCode []string
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		if c.Code != "" && strings.EqualFold(c.Code, input) {
			byCode = append(byCode, c.ID)
		}
		ids = append(ids, c.ID)
	}
	if len(byCode) == 1 {
		return byCode[0], nil
	}
	return resolveID("course", input, ids)
}

func resolveAssignmentID(ctx context.Context, app *App, input string) (string, error) {
	assignments, err := app.Assignments.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}
	return resolveID("assignment", input, ids)
}

func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	tasks, err := app.Tasks.List(ctx, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return resolveID("task", input, ids)
}

func resolveConnectionID(ctx context.Context, app *App, input string) (string, error) {
	conns, err := app.Sync.ListConnections(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(conns))
	for _, c := range conns {
		ids = append(ids, c.ID)
	}
	return resolveID("connection", input, ids)
}
