package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/importer"
	"github.com/alexanderramin/semester/internal/repository"
)

type backupService struct {
	userID      string
	courses     repository.CourseRepo
	assignments repository.AssignmentRepo
	tasks       repository.TaskRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewBackupService(
	userID string,
	courses repository.CourseRepo,
	assignments repository.AssignmentRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BackupService {
	return &backupService{
		userID:      userID,
		courses:     courses,
		assignments: assignments,
		tasks:       tasks,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *backupService) Export(ctx context.Context) (*importer.Snapshot, error) {
	courses, assignments, tasks, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return importer.FromDomain(courses, assignments, tasks, time.Now().UTC()), nil
}

// Import validates the snapshot and merges it into the store by id:
// existing records are overwritten, new ones inserted. Nothing is written
// unless every record succeeds.
func (s *backupService) Import(ctx context.Context, snapshot *importer.Snapshot) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if result != nil {
			fields["courses"] = result.Courses
			fields["assignments"] = result.Assignments
			fields["tasks"] = result.Tasks
		}
		observe(ctx, s.observer, "import-backup", startedAt, fields, err)
	}()

	if errs := importer.ValidateSnapshot(snapshot); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	converted, err := snapshot.ToDomain(s.userID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("converting backup: %w", err)
	}

	result = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCourses := repository.NewSQLiteCourseRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		for _, c := range converted.Courses {
			if err := txCourses.Upsert(ctx, c); err != nil {
				return fmt.Errorf("importing course '%s': %w", c.Name, err)
			}
			result.Courses++
		}
		for _, a := range converted.Assignments {
			if err := txAssignments.Upsert(ctx, a); err != nil {
				return fmt.Errorf("importing assignment '%s': %w", a.Title, err)
			}
			result.Assignments++
		}
		for _, t := range converted.Tasks {
			if err := upsertTask(ctx, txTasks, t); err != nil {
				return fmt.Errorf("importing task '%s': %w", t.Title, err)
			}
			result.Tasks++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func upsertTask(ctx context.Context, tasks repository.TaskRepo, t *domain.Task) error {
	existing, err := tasks.GetByID(ctx, t.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return tasks.Create(ctx, t)
	case err != nil:
		return err
	}
	t.CreatedAt = existing.CreatedAt
	return tasks.Update(ctx, t)
}

func (s *backupService) Calendar(ctx context.Context, now time.Time) (string, error) {
	courses, assignments, tasks, err := s.loadAll(ctx)
	if err != nil {
		return "", err
	}
	return importer.ICS(courses, assignments, tasks, now), nil
}

func (s *backupService) loadAll(ctx context.Context) ([]*domain.Course, []*domain.Assignment, []*domain.Task, error) {
	courses, err := s.courses.List(ctx, s.userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listing courses: %w", err)
	}
	assignments, err := s.assignments.List(ctx, s.userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listing assignments: %w", err)
	}
	tasks, err := s.tasks.List(ctx, s.userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listing tasks: %w", err)
	}
	return courses, assignments, tasks, nil
}
