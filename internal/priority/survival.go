package priority

import (
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

type ItemKind string

const (
	KindAssignment ItemKind = "assignment"
	KindTask       ItemKind = "task"
)

const (
	urgencyWeight = 0.55
	impactWeight  = 0.45

	taskImpact      = 0.1
	longTaskMinutes = 60
	longTaskPenalty = 0.1
	miscCourseCode  = "Misc"
)

// SurvivalItem is one entry of the survival ranking. Exactly one of
// Assignment and Task is set.
type SurvivalItem struct {
	Kind       ItemKind
	ID         string
	Title      string
	CourseCode string
	DueDate    *time.Time
	Urgency    float64
	Impact     float64
	Score      float64

	Assignment *domain.Assignment
	Task       *domain.Task
}

// Urgency buckets the days until due: overdue 1.2, within a day 1.0,
// within three 0.6, within a week 0.4, otherwise 0.2. Undated items fall
// in the last bucket.
func Urgency(due *time.Time, now time.Time) float64 {
	if due == nil {
		return 0.2
	}
	days := daysUntil(due, now)
	switch {
	case days < 0:
		return 1.2
	case days <= 1:
		return 1.0
	case days <= 3:
		return 0.6
	case days <= 7:
		return 0.4
	default:
		return 0.2
	}
}

// SurvivalScoreAssignment scores an assignment with impact weight/100.
func SurvivalScoreAssignment(a *domain.Assignment, course *domain.Course, now time.Time) SurvivalItem {
	item := SurvivalItem{
		Kind:       KindAssignment,
		ID:         a.ID,
		Title:      a.Title,
		DueDate:    a.DueDate,
		Urgency:    Urgency(a.DueDate, now),
		Impact:     categoryWeight(a, course) / 100,
		Assignment: a,
	}
	if course != nil {
		item.CourseCode = course.DisplayCode()
	}
	item.Score = urgencyWeight*item.Urgency + impactWeight*item.Impact
	return item
}

// SurvivalScoreTask scores a task with a flat impact, less a penalty when
// it is estimated at over an hour.
func SurvivalScoreTask(t *domain.Task, now time.Time) SurvivalItem {
	item := SurvivalItem{
		Kind:       KindTask,
		ID:         t.ID,
		Title:      t.Title,
		CourseCode: miscCourseCode,
		DueDate:    t.DueDate,
		Urgency:    Urgency(t.DueDate, now),
		Impact:     taskImpact,
		Task:       t,
	}
	item.Score = urgencyWeight*item.Urgency + impactWeight*item.Impact
	if t.EstMinutes > longTaskMinutes {
		item.Score -= longTaskPenalty
	}
	return item
}

// RankSurvival mixes ungraded assignments and incomplete tasks into one
// ranking. Assignments precede tasks on equal scores.
func RankSurvival(courses []*domain.Course, assignments []*domain.Assignment, tasks []*domain.Task, now time.Time) []SurvivalItem {
	byID := indexCourses(courses)

	items := make([]SurvivalItem, 0, len(assignments)+len(tasks))
	for _, a := range assignments {
		if a.IsGraded() {
			continue
		}
		items = append(items, SurvivalScoreAssignment(a, byID[a.CourseID], now))
	}
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		items = append(items, SurvivalScoreTask(t, now))
	}
	SortSurvival(items)
	return items
}
