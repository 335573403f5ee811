package repository

import (
	"context"

	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/reconcile"
)

// SyncStore exposes the course and assignment tables as the persistence
// side of LMS reconciliation.
type SyncStore struct {
	courses     CourseRepo
	assignments AssignmentRepo
}

var _ reconcile.Store = (*SyncStore)(nil)

// NewSyncStore builds a SyncStore over db, which may be a pool or a tx.
func NewSyncStore(db db.DBTX) *SyncStore {
	return &SyncStore{
		courses:     NewSQLiteCourseRepo(db),
		assignments: NewSQLiteAssignmentRepo(db),
	}
}

func (s *SyncStore) ListCourses(ctx context.Context, userID string) ([]*domain.Course, error) {
	return s.courses.List(ctx, userID)
}

func (s *SyncStore) ListAssignments(ctx context.Context, userID string) ([]*domain.Assignment, error) {
	return s.assignments.List(ctx, userID)
}

func (s *SyncStore) UpsertCourse(ctx context.Context, c *domain.Course) error {
	return s.courses.Upsert(ctx, c)
}

func (s *SyncStore) UpsertAssignment(ctx context.Context, a *domain.Assignment) error {
	return s.assignments.Upsert(ctx, a)
}
