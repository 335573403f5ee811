package priority

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/grades"
)

type InsightKind string

const (
	InsightGradeGoal  InsightKind = "grade_goal"
	InsightDeadline   InsightKind = "deadline"
	InsightHighImpact InsightKind = "high_impact"
)

type InsightPriority string

const (
	InsightCritical InsightPriority = "critical"
	InsightHigh     InsightPriority = "high"
	InsightMedium   InsightPriority = "medium"
)

const (
	gradeGoalGap        = 3.0
	deadlineWindowHours = 48.0
	highImpactMinWeight = 15.0
)

// Insight is a short actionable hint derived from grades and deadlines.
type Insight struct {
	Kind         InsightKind
	Priority     InsightPriority
	CourseID     string
	AssignmentID string
	Title        string
	Message      string
	Action       string
}

// Insights flags courses close to the next grade boundary, ungraded work
// due within 48 hours, and ungraded work in heavy categories. A deadline
// insight supersedes the high-impact one for the same assignment.
// Assignments of unknown courses are ignored.
func Insights(courses []*domain.Course, assignments []*domain.Assignment, now time.Time) []Insight {
	var out []Insight

	for _, course := range courses {
		g := grades.ComputeCourseGrade(course, assignments)
		if g.Percent == nil {
			continue
		}
		next, ok := grades.NextThreshold(*g.Percent, course.GradingScale)
		if !ok {
			continue
		}
		// Compared at display precision so "3.0% away" never fires.
		gap := math.Round((next.MinPercent-*g.Percent)*10) / 10
		if gap >= gradeGoalGap {
			continue
		}
		out = append(out, Insight{
			Kind:     InsightGradeGoal,
			Priority: InsightHigh,
			CourseID: course.ID,
			Title:    fmt.Sprintf("Push for the %s!", next.Label),
			Message:  fmt.Sprintf("You're only %.1f%% away from %s in %s.", gap, next.Label, course.DisplayCode()),
			Action:   "View Assignments",
		})
	}

	byID := indexCourses(courses)
	for _, a := range assignments {
		if a.IsGraded() {
			continue
		}
		course, ok := byID[a.CourseID]
		if !ok {
			continue
		}

		if a.DueDate != nil {
			hours := a.DueDate.Sub(now).Hours()
			if hours > 0 && hours < deadlineWindowHours {
				out = append(out, Insight{
					Kind:         InsightDeadline,
					Priority:     InsightCritical,
					CourseID:     course.ID,
					AssignmentID: a.ID,
					Title:        fmt.Sprintf("Deadline Alert: %s", a.Title),
					Message:      fmt.Sprintf("Due in %d hours. This is in %s.", int(math.Round(hours)), course.DisplayCode()),
					Action:       "Go to Course",
				})
				continue
			}
		}

		if cat, ok := course.Category(a.CategoryID); ok && cat.Weight >= highImpactMinWeight {
			out = append(out, Insight{
				Kind:         InsightHighImpact,
				Priority:     InsightMedium,
				CourseID:     course.ID,
				AssignmentID: a.ID,
				Title:        fmt.Sprintf("High Impact: %s", a.Title),
				Message:      fmt.Sprintf("This is worth %g%% of your grade. Start early to stay ahead!", cat.Weight),
				Action:       "Plan Study Time",
			})
		}
	}

	SortInsights(out)
	return out
}
