package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/priority"
	"github.com/alexanderramin/semester/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	userID   string
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(userID string, tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TaskService {
	return &taskService{
		userID:   userID,
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.UserID == "" {
		t.UserID = s.userID
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, includeCompleted bool) ([]*domain.Task, error) {
	all, err := s.tasks.List(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	if includeCompleted {
		return all, nil
	}
	open := make([]*domain.Task, 0, len(all))
	for _, t := range all {
		if !t.Completed {
			open = append(open, t)
		}
	}
	return open, nil
}

func (s *taskService) SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Completed == completed {
		return t, nil
	}
	t.Toggle(time.Now().UTC())
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// GenerateRecurring creates the next occurrence of every recurring template.
// An occurrence that already exists for its date is skipped, so repeated
// runs on the same day create nothing.
func (s *taskService) GenerateRecurring(ctx context.Context, now time.Time) (created []*domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["created"] = len(created)
		observe(ctx, s.observer, "generate-recurring", startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		templates, err := txTasks.ListRecurringTemplates(ctx, s.userID)
		if err != nil {
			return fmt.Errorf("listing templates: %w", err)
		}
		fields["templates"] = len(templates)
		existing, err := txTasks.List(ctx, s.userID)
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}

		stamp := time.Now().UTC()
		for _, t := range priority.ExpandRecurring(templates, existing, now) {
			t.ID = uuid.New().String()
			t.CreatedAt = stamp
			t.UpdatedAt = stamp
			if err := txTasks.Create(ctx, t); err != nil {
				if errors.Is(err, domain.ErrConflict) {
					continue
				}
				return fmt.Errorf("creating occurrence of %q: %w", t.Title, err)
			}
			created = append(created, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
