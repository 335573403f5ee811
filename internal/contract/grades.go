package contract

import (
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/grades"
)

// CourseGradeView is one course line of a grade report.
type CourseGradeView struct {
	CourseID   string
	Name       string
	Code       string
	Credits    float64
	Grade      grades.CourseGrade
	Graded     int
	Total      int
	Categories []grades.CategoryGrade
	// CountsTowardGPA is false when the letter has no grade points.
	CountsTowardGPA bool
}

type GradeReportRequest struct {
	// CourseIDs limits the report; empty means every course.
	CourseIDs []string
	Points    grades.GradePointMap
}

func NewGradeReportRequest() GradeReportRequest {
	return GradeReportRequest{Points: grades.DefaultGradePoints()}
}

type GradeReport struct {
	GeneratedAt time.Time
	Courses     []CourseGradeView
	GPA         float64
	GPACredits  float64
}

type FinalRequest struct {
	CourseID string
	// CategoryID names the final category; empty means detect it.
	CategoryID    string
	TargetPercent float64
}

type FinalResponse struct {
	Course   *domain.Course
	Current  grades.CourseGrade
	Result   grades.FinalScore
	Detected bool
}

// HypotheticalScore is one what-if entry. An AssignmentID replaces that
// assignment's score; without one a new graded item is added.
type HypotheticalScore struct {
	AssignmentID   string
	CategoryID     string
	Title          string
	PointsEarned   float64
	PointsPossible float64
}

type WhatIfRequest struct {
	CourseID string
	Scores   []HypotheticalScore
}

type WhatIfResponse struct {
	Course    *domain.Course
	Current   grades.CourseGrade
	Projected grades.CourseGrade
}
