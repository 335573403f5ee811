package priority

import (
	"math"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

const (
	timeWeight   = 0.6
	weightWeight = 0.4

	// timeScore falls by this much per day until it reaches zero.
	timeDecayPerDay = 10.0

	unknownCourseName  = "Unknown"
	unknownCourseColor = "#ccc"
)

// Score is the panic ranking of a single ungraded assignment.
type Score struct {
	PriorityScore int
	// DiffDays is the whole days until due, floored, never negative.
	DiffDays int
}

// RankedAssignment is an assignment with the course context used to score it.
type RankedAssignment struct {
	Assignment     *domain.Assignment
	CourseName     string
	CourseCode     string
	CourseColor    string
	CategoryWeight float64
	Score
}

func daysUntil(due *time.Time, now time.Time) float64 {
	if due == nil {
		return 0
	}
	return due.Sub(now).Hours() / 24
}

func categoryWeight(a *domain.Assignment, course *domain.Course) float64 {
	if course == nil {
		return 0
	}
	cat, ok := course.Category(a.CategoryID)
	if !ok {
		return 0
	}
	return cat.Weight
}

// ScorePriority blends deadline urgency with category weight:
// round(timeScore*0.6 + weight*0.4), where timeScore drops from 100 on the
// due day to 0 ten days out. An unresolved course or category weighs 0.
// Assignments without a due date carry no time urgency.
func ScorePriority(a *domain.Assignment, course *domain.Course, now time.Time) Score {
	diffDays := math.Max(0, daysUntil(a.DueDate, now))

	timeScore := 0.0
	if a.DueDate != nil {
		timeScore = math.Max(0, 100-diffDays*timeDecayPerDay)
	}
	weight := categoryWeight(a, course)

	return Score{
		PriorityScore: int(math.Round(timeScore*timeWeight + weight*weightWeight)),
		DiffDays:      int(math.Floor(diffDays)),
	}
}

// RankPanic scores every ungraded assignment and orders them highest
// first. Ties keep the input order.
func RankPanic(courses []*domain.Course, assignments []*domain.Assignment, now time.Time) []RankedAssignment {
	byID := indexCourses(courses)

	ranked := make([]RankedAssignment, 0, len(assignments))
	for _, a := range assignments {
		if a.IsGraded() {
			continue
		}
		course := byID[a.CourseID]
		item := RankedAssignment{
			Assignment:     a,
			CourseName:     unknownCourseName,
			CourseColor:    unknownCourseColor,
			CategoryWeight: categoryWeight(a, course),
			Score:          ScorePriority(a, course, now),
		}
		if course != nil {
			item.CourseName = course.Name
			item.CourseCode = course.Code
			item.CourseColor = domain.CoalesceStr(course.Color, unknownCourseColor)
		}
		ranked = append(ranked, item)
	}
	SortRanked(ranked)
	return ranked
}

// Top returns at most n leading items. n <= 0 returns all.
func Top(ranked []RankedAssignment, n int) []RankedAssignment {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

func indexCourses(courses []*domain.Course) map[string]*domain.Course {
	byID := make(map[string]*domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	return byID
}
