package service

import (
	"context"
	"time"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/importer"
	"github.com/alexanderramin/semester/internal/lms"
	"github.com/alexanderramin/semester/internal/reconcile"
)

type CourseService interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) error
	SetCategories(ctx context.Context, id string, categories []domain.Category) (*domain.Course, error)
	// SetGradingScale parses text and stores the result. When nothing in
	// text parses the default scale is stored and usedDefault is true.
	SetGradingScale(ctx context.Context, id, text string) (course *domain.Course, usedDefault bool, err error)
	// Delete removes a course. A course that still has assignments is only
	// deleted with force, which removes them in the same transaction.
	Delete(ctx context.Context, id string, force bool) (removedAssignments int, err error)
}

type AssignmentService interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	List(ctx context.Context) ([]*domain.Assignment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	// RecordGrade sets the earned points; nil clears the grade.
	RecordGrade(ctx context.Context, id string, earned *float64) (*domain.Assignment, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, includeCompleted bool) ([]*domain.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	GenerateRecurring(ctx context.Context, now time.Time) ([]*domain.Task, error)
}

type GradeService interface {
	CourseGrade(ctx context.Context, courseID string) (*contract.CourseGradeView, error)
	Report(ctx context.Context, req contract.GradeReportRequest) (*contract.GradeReport, error)
	RequiredFinal(ctx context.Context, req contract.FinalRequest) (*contract.FinalResponse, error)
	WhatIf(ctx context.Context, req contract.WhatIfRequest) (*contract.WhatIfResponse, error)
}

type PriorityService interface {
	Panic(ctx context.Context, req contract.PanicRequest) (*contract.PanicResponse, error)
	Survival(ctx context.Context, req contract.SurvivalRequest) (*contract.SurvivalResponse, error)
	Insights(ctx context.Context, now *time.Time) (*contract.InsightsResponse, error)
}

type SyncService interface {
	Connect(ctx context.Context, req contract.ConnectRequest) (*domain.LMSConnection, error)
	ListConnections(ctx context.Context) ([]*domain.LMSConnection, error)
	Disconnect(ctx context.Context, id string) error
	ListRemoteCourses(ctx context.Context, connectionID string) ([]lms.ExternalCourse, error)
	SyncAll(ctx context.Context) (*contract.SyncReport, error)
	SyncConnection(ctx context.Context, connectionID string) (*reconcile.ConnectionResult, error)
	ImportCourse(ctx context.Context, req contract.ImportCourseRequest) (*reconcile.CourseResult, error)
}

// ImportResult counts the records written by a backup import.
type ImportResult struct {
	Courses     int
	Assignments int
	Tasks       int
}

type BackupService interface {
	Export(ctx context.Context) (*importer.Snapshot, error)
	Import(ctx context.Context, snapshot *importer.Snapshot) (*ImportResult, error)
	Calendar(ctx context.Context, now time.Time) (string, error)
}
