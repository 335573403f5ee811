package domain

import "time"

type Assignment struct {
	ID             string
	UserID         string
	CourseID       string
	CategoryID     string
	Title          string
	Details        string
	DueDate        *time.Time
	PointsPossible float64
	PointsEarned   *float64 // nil until graded
	ExternalRef    *ExternalRef
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsGraded reports whether a score has been recorded.
func (a *Assignment) IsGraded() bool {
	return a.PointsEarned != nil
}

// IsExternal reports whether the assignment was imported from an LMS.
func (a *Assignment) IsExternal() bool {
	return a.ExternalRef != nil && a.ExternalRef.ExternalID != ""
}

// Status returns the provider status, or "" for manual assignments.
func (a *Assignment) Status() string {
	if a.ExternalRef == nil {
		return ""
	}
	return a.ExternalRef.Status
}
