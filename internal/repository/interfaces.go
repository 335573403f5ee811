package repository

import (
	"context"

	"github.com/alexanderramin/semester/internal/domain"
)

// Writes that collide on (user, provider, external id) return an error
// matching domain.ErrConflict; lookups of missing rows return a
// *domain.NotFoundError.

type CourseRepo interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, userID string) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) error
	Upsert(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	List(ctx context.Context, userID string) ([]*domain.Assignment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	Upsert(ctx context.Context, a *domain.Assignment) error
	Delete(ctx context.Context, id string) error
	DeleteByCourse(ctx context.Context, courseID string) (int, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	ListRecurringTemplates(ctx context.Context, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ConnectionRepo interface {
	Create(ctx context.Context, c *domain.LMSConnection) error
	GetByID(ctx context.Context, id string) (*domain.LMSConnection, error)
	List(ctx context.Context, userID string) ([]*domain.LMSConnection, error)
	Update(ctx context.Context, c *domain.LMSConnection) error
	Delete(ctx context.Context, id string) error
}
