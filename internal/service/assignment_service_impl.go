package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/repository"
	"github.com/google/uuid"
)

type assignmentService struct {
	userID      string
	assignments repository.AssignmentRepo
	courses     repository.CourseRepo
}

func NewAssignmentService(userID string, assignments repository.AssignmentRepo, courses repository.CourseRepo) AssignmentService {
	return &assignmentService{userID: userID, assignments: assignments, courses: courses}
}

// Create places the assignment in the course's first category when none is
// given. A category the course does not define is rejected.
func (s *assignmentService) Create(ctx context.Context, a *domain.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.UserID == "" {
		a.UserID = s.userID
	}
	if err := validateAssignment(a); err != nil {
		return err
	}
	course, err := s.courses.GetByID(ctx, a.CourseID)
	if err != nil {
		return err
	}
	if err := resolveCategory(a, course); err != nil {
		return err
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.assignments.Create(ctx, a)
}

func (s *assignmentService) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	return s.assignments.GetByID(ctx, id)
}

func (s *assignmentService) List(ctx context.Context) ([]*domain.Assignment, error) {
	return s.assignments.List(ctx, s.userID)
}

func (s *assignmentService) ListByCourse(ctx context.Context, courseID string) ([]*domain.Assignment, error) {
	return s.assignments.ListByCourse(ctx, courseID)
}

func (s *assignmentService) Update(ctx context.Context, a *domain.Assignment) error {
	if err := validateAssignment(a); err != nil {
		return err
	}
	course, err := s.courses.GetByID(ctx, a.CourseID)
	if err != nil {
		return err
	}
	if err := resolveCategory(a, course); err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	return s.assignments.Update(ctx, a)
}

func (s *assignmentService) RecordGrade(ctx context.Context, id string, earned *float64) (*domain.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if earned != nil && *earned < 0 {
		return nil, domain.NewValidationError("points_earned", "must not be negative")
	}
	a.PointsEarned = earned
	a.UpdatedAt = time.Now().UTC()
	if err := s.assignments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("recording grade: %w", err)
	}
	return a, nil
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	return s.assignments.Delete(ctx, id)
}

func validateAssignment(a *domain.Assignment) error {
	if a.Title == "" {
		return domain.NewValidationError("title", "is required")
	}
	if a.CourseID == "" {
		return domain.NewValidationError("course_id", "is required")
	}
	if a.PointsPossible < 0 {
		return domain.NewValidationError("points_possible", "must not be negative")
	}
	if a.PointsEarned != nil && *a.PointsEarned < 0 {
		return domain.NewValidationError("points_earned", "must not be negative")
	}
	return nil
}

func resolveCategory(a *domain.Assignment, course *domain.Course) error {
	if a.CategoryID == "" {
		if len(course.Categories) > 0 {
			a.CategoryID = course.Categories[0].ID
		}
		return nil
	}
	if _, ok := course.Category(a.CategoryID); !ok {
		return domain.NewNotFoundError("category", a.CategoryID)
	}
	return nil
}
