package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/grades"
	"github.com/alexanderramin/semester/internal/repository"
	"github.com/google/uuid"
)

const defaultCourseColor = "#6366f1"

type courseService struct {
	userID      string
	courses     repository.CourseRepo
	assignments repository.AssignmentRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewCourseService(
	userID string,
	courses repository.CourseRepo,
	assignments repository.AssignmentRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CourseService {
	return &courseService{
		userID:      userID,
		courses:     courses,
		assignments: assignments,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *courseService) Create(ctx context.Context, c *domain.Course) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.UserID == "" {
		c.UserID = s.userID
	}
	if c.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if c.Credits < 0 {
		return domain.NewValidationError("credits", "must not be negative")
	}
	if err := c.ValidateCategories(); err != nil {
		return err
	}
	c.Color = domain.CoalesceStr(c.Color, defaultCourseColor)
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.courses.Create(ctx, c)
}

func (s *courseService) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.GetByID(ctx, id)
}

func (s *courseService) List(ctx context.Context) ([]*domain.Course, error) {
	return s.courses.List(ctx, s.userID)
}

func (s *courseService) Update(ctx context.Context, c *domain.Course) error {
	if c.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if err := c.ValidateCategories(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.courses.Update(ctx, c)
}

func (s *courseService) SetCategories(ctx context.Context, id string, categories []domain.Category) (*domain.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Categories = categories
	if err := s.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *courseService) SetGradingScale(ctx context.Context, id, text string) (*domain.Course, bool, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	scale, parseErr := grades.ParseScale(text)
	usedDefault := parseErr != nil
	if usedDefault {
		scale = grades.DefaultScale()
	}
	c.GradingScale = scale
	if err := s.Update(ctx, c); err != nil {
		return nil, false, err
	}
	return c, usedDefault, nil
}

func (s *courseService) Delete(ctx context.Context, id string, force bool) (removed int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"course_id": id, "force": force}
	defer func() {
		fields["removed_assignments"] = removed
		observe(ctx, s.observer, "delete-course", startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCourses := repository.NewSQLiteCourseRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		if _, err := txCourses.GetByID(ctx, id); err != nil {
			return err
		}
		owned, err := txAssignments.ListByCourse(ctx, id)
		if err != nil {
			return fmt.Errorf("listing assignments: %w", err)
		}
		if len(owned) > 0 {
			if !force {
				return fmt.Errorf("course has %d assignment(s) (use --force to delete them too): %w",
					len(owned), domain.ErrConflict)
			}
			if removed, err = txAssignments.DeleteByCourse(ctx, id); err != nil {
				return fmt.Errorf("deleting assignments: %w", err)
			}
		}
		if err := txCourses.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting course: %w", err)
		}
		return nil
	})
	if err != nil {
		removed = 0
	}
	return removed, err
}
