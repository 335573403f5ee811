package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/priority"
	"github.com/alexanderramin/semester/internal/repository"
	"github.com/google/uuid"
)

type priorityService struct {
	userID      string
	courses     repository.CourseRepo
	assignments repository.AssignmentRepo
	tasks       repository.TaskRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewPriorityService(
	userID string,
	courses repository.CourseRepo,
	assignments repository.AssignmentRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PriorityService {
	return &priorityService{
		userID:      userID,
		courses:     courses,
		assignments: assignments,
		tasks:       tasks,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Panic ranks ungraded assignments and plans a study session for the top
// entries. With Persist the planned tasks are stored atomically.
func (s *priorityService) Panic(ctx context.Context, req contract.PanicRequest) (resp *contract.PanicResponse, err error) {
	startedAt := time.Now().UTC()
	now := contract.ResolveNow(req.Now)
	fields := map[string]any{"top_n": req.TopN, "persist": req.Persist}
	defer func() {
		if resp != nil {
			fields["ranked"] = len(resp.Ranked)
			fields["planned"] = len(resp.Plan)
		}
		observe(ctx, s.observer, "panic", startedAt, fields, err)
	}()

	courses, assignments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ranked := priority.RankPanic(courses, assignments, now)
	top := priority.Top(ranked, req.TopN)
	plan := priority.PlanPanicSession(top, now)
	for _, t := range plan {
		t.ID = uuid.New().String()
		t.UserID = domain.CoalesceStr(t.UserID, s.userID)
		t.CreatedAt = now
		t.UpdatedAt = now
	}

	if req.Persist && len(plan) > 0 {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txTasks := repository.NewSQLiteTaskRepo(tx)
			for _, t := range plan {
				if err := txTasks.Create(ctx, t); err != nil {
					return fmt.Errorf("creating task %q: %w", t.Title, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return &contract.PanicResponse{
		GeneratedAt: now,
		Ranked:      ranked,
		Top:         top,
		Plan:        plan,
	}, nil
}

func (s *priorityService) Survival(ctx context.Context, req contract.SurvivalRequest) (*contract.SurvivalResponse, error) {
	now := contract.ResolveNow(req.Now)
	courses, assignments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	items := priority.RankSurvival(courses, assignments, tasks, now)
	if req.Limit > 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}
	return &contract.SurvivalResponse{GeneratedAt: now, Items: items}, nil
}

func (s *priorityService) Insights(ctx context.Context, at *time.Time) (*contract.InsightsResponse, error) {
	now := contract.ResolveNow(at)
	courses, assignments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &contract.InsightsResponse{
		GeneratedAt: now,
		Insights:    priority.Insights(courses, assignments, now),
	}, nil
}

func (s *priorityService) load(ctx context.Context) ([]*domain.Course, []*domain.Assignment, error) {
	courses, err := s.courses.List(ctx, s.userID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing courses: %w", err)
	}
	assignments, err := s.assignments.List(ctx, s.userID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing assignments: %w", err)
	}
	return courses, assignments, nil
}
