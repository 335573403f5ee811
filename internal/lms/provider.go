package lms

import (
	"context"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

// ExternalCourse is a course as reported by an LMS.
type ExternalCourse struct {
	ExternalID        string
	Name              string
	Code              string
	Term              string
	GradingStandardID string
}

// ExternalAssignment is an assignment as reported by an LMS.
type ExternalAssignment struct {
	ExternalID     string
	Title          string
	DueDate        *time.Time
	PointsPossible float64
	PointsEarned   *float64
	Status         string
	GroupID        string
}

// GradingGroup is a provider weighting bucket (a Canvas assignment group).
type GradingGroup struct {
	ID     string
	Name   string
	Weight float64
}

// Provider fetches course data from one kind of LMS. Every method may
// return a *ProviderError.
type Provider interface {
	FetchCourses(ctx context.Context, conn *domain.LMSConnection) ([]ExternalCourse, error)
	FetchAssignments(ctx context.Context, conn *domain.LMSConnection, courseID string) ([]ExternalAssignment, error)
	FetchGradingGroups(ctx context.Context, conn *domain.LMSConnection, courseID string) ([]GradingGroup, error)

	// FetchGradingScale returns nil when the course has no grading standard.
	FetchGradingScale(ctx context.Context, conn *domain.LMSConnection, courseID, standardID string) (domain.GradingScale, error)
}
