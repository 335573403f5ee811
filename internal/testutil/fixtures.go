package testutil

import (
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/google/uuid"
)

// TestUserID owns every fixture unless overridden.
const TestUserID = "user-1"

// fixtureNow is second-aligned so values survive a round trip through the
// RFC3339 columns unchanged.
func fixtureNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Course options
type CourseOption func(*domain.Course)

func WithCourseUser(id string) CourseOption {
	return func(c *domain.Course) {
		c.UserID = id
	}
}

func WithCode(code string) CourseOption {
	return func(c *domain.Course) {
		c.Code = code
	}
}

func WithCredits(credits float64) CourseOption {
	return func(c *domain.Course) {
		c.Credits = credits
	}
}

func WithCategories(cats ...domain.Category) CourseOption {
	return func(c *domain.Course) {
		c.Categories = cats
	}
}

func WithScale(scale domain.GradingScale) CourseOption {
	return func(c *domain.Course) {
		c.GradingScale = scale
	}
}

func WithCourseExternal(provider domain.Provider, externalID string) CourseOption {
	return func(c *domain.Course) {
		c.ExternalRef = &domain.ExternalRef{Provider: provider, ExternalID: externalID}
		c.SyncEnabled = true
	}
}

func WithSyncEnabled(enabled bool) CourseOption {
	return func(c *domain.Course) {
		c.SyncEnabled = enabled
	}
}

// NewTestCourse builds a course with Homework (40) and Exams (60) categories.
func NewTestCourse(name string, opts ...CourseOption) *domain.Course {
	now := fixtureNow()
	c := &domain.Course{
		ID:      uuid.New().String(),
		UserID:  TestUserID,
		Name:    name,
		Credits: 3,
		Color:   "#6366f1",
		Categories: []domain.Category{
			{ID: "hw", Name: "Homework", Weight: 40},
			{ID: "exam", Name: "Exams", Weight: 60},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Assignment options
type AssignmentOption func(*domain.Assignment)

func WithCategory(id string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.CategoryID = id
	}
}

func WithDue(d time.Time) AssignmentOption {
	return func(a *domain.Assignment) {
		a.DueDate = &d
	}
}

func WithPoints(possible float64) AssignmentOption {
	return func(a *domain.Assignment) {
		a.PointsPossible = possible
	}
}

func WithScore(earned, possible float64) AssignmentOption {
	return func(a *domain.Assignment) {
		a.PointsEarned = &earned
		a.PointsPossible = possible
	}
}

func WithAssignmentExternal(provider domain.Provider, externalID, status string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.ExternalRef = &domain.ExternalRef{Provider: provider, ExternalID: externalID, Status: status}
	}
}

func WithAssignmentUser(id string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.UserID = id
	}
}

// NewTestAssignment builds an ungraded 100-point homework item.
func NewTestAssignment(courseID, title string, opts ...AssignmentOption) *domain.Assignment {
	now := fixtureNow()
	a := &domain.Assignment{
		ID:             uuid.New().String(),
		UserID:         TestUserID,
		CourseID:       courseID,
		CategoryID:     "hw",
		Title:          title,
		PointsPossible: 100,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskDue(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithEstMinutes(m int) TaskOption {
	return func(t *domain.Task) {
		t.EstMinutes = m
	}
}

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithRecurrence(freq domain.RecurrenceFrequency, interval int) TaskOption {
	return func(t *domain.Task) {
		t.RecurrenceRule = &domain.RecurrenceRule{Frequency: freq, Interval: interval}
	}
}

func WithParentTask(id string) TaskOption {
	return func(t *domain.Task) {
		t.ParentTaskID = &id
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := fixtureNow()
	t := &domain.Task{
		ID:         uuid.New().String(),
		UserID:     TestUserID,
		Title:      title,
		Priority:   domain.PriorityMedium,
		EstMinutes: 30,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Connection options
type ConnectionOption func(*domain.LMSConnection)

func WithInstance(url string) ConnectionOption {
	return func(c *domain.LMSConnection) {
		c.InstanceURL = url
	}
}

func WithToken(token string) ConnectionOption {
	return func(c *domain.LMSConnection) {
		c.AccessToken = token
	}
}

// NewTestConnection builds a simulated connection for provider.
func NewTestConnection(provider domain.Provider, opts ...ConnectionOption) *domain.LMSConnection {
	now := fixtureNow()
	c := &domain.LMSConnection{
		ID:          uuid.New().String(),
		UserID:      TestUserID,
		Provider:    provider,
		InstanceURL: string(provider) + ".example.edu",
		AccessToken: domain.MockTokenPrefix + "test",
		SyncStatus:  domain.SyncNever,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
