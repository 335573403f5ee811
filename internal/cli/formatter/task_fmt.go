package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

// FormatAssignmentList renders assignments with their course code, due date
// and score. courses maps course IDs for the code column.
func FormatAssignmentList(assignments []*domain.Assignment, courses map[string]*domain.Course, now time.Time) string {
	if len(assignments) == 0 {
		return Dim("No assignments.") + "\n"
	}
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		code := Dim("?")
		category := a.CategoryID
		if c, ok := courses[a.CourseID]; ok {
			code = c.DisplayCode()
			if cat, ok := c.Category(a.CategoryID); ok {
				category = cat.Name
			}
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			code,
			Truncate(a.Title, 40),
			category,
			DueLabel(a.DueDate, now),
			FormatScore(a.PointsEarned, a.PointsPossible),
			assignmentStatus(a),
		})
	}
	return RenderTable([]string{"ID", "COURSE", "TITLE", "CATEGORY", "DUE", "SCORE", "STATUS"}, rows, 5)
}

func assignmentStatus(a *domain.Assignment) string {
	status := a.Status()
	if status == "" {
		if a.IsGraded() {
			return StyleGreen.Render("✔ graded")
		}
		return StyleDim.Render("○ open")
	}
	switch status {
	case domain.StatusGraded:
		return StyleGreen.Render("✔ graded")
	case domain.StatusSubmitted:
		return StyleBlue.Render("● submitted")
	case domain.StatusMissing:
		return StyleRed.Render("✖ missing")
	default:
		return StyleDim.Render("○ " + status)
	}
}

// FormatTaskList renders tasks, marking recurring templates and completed
// tasks.
func FormatTaskList(tasks []*domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		title := Truncate(t.Title, 48)
		if t.Completed {
			title = Dim("✔ " + title)
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			title,
			TaskPriorityPill(t.Priority),
			DueLabel(t.DueDate, now),
			estimate(t.EstMinutes),
			repeatLabel(t.RecurrenceRule),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "PRIORITY", "DUE", "EST", "REPEAT"}, rows)
}

func estimate(min int) string {
	if min <= 0 {
		return Dim("--")
	}
	return FormatMinutes(min)
}

func repeatLabel(rule *domain.RecurrenceRule) string {
	if rule == nil {
		return ""
	}
	if rule.Interval > 1 {
		unit := strings.TrimSuffix(string(rule.Frequency), "ly")
		if rule.Frequency == domain.RecurDaily {
			unit = "day"
		}
		return StylePurple.Render(fmt.Sprintf("every %d %ss", rule.Interval, unit))
	}
	return StylePurple.Render(string(rule.Frequency))
}
