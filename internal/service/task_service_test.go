package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(testutil.TestUserID, r.tasks, r.uow)

	task := &domain.Task{Title: "Buy lab goggles"}
	require.NoError(t, svc.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.PriorityMedium, task.Priority, "priority should default to medium")

	err := svc.Create(ctx, &domain.Task{Title: "Gym", RecurrenceRule: &domain.RecurrenceRule{Frequency: domain.RecurDaily}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.Create(ctx, &domain.Task{Title: "Bad", Priority: "urgent"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskService_SetCompletedAndList(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(testutil.TestUserID, r.tasks, r.uow)

	open := testutil.NewTestTask("Read chapter 4")
	done := testutil.NewTestTask("Email TA")
	require.NoError(t, r.tasks.Create(ctx, open))
	require.NoError(t, r.tasks.Create(ctx, done))

	updated, err := svc.SetCompleted(ctx, done.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	// Setting the same state again is a no-op.
	again, err := svc.SetCompleted(ctx, done.ID, true)
	require.NoError(t, err)
	assert.True(t, again.Completed)

	visible, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, open.ID, visible[0].ID)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	reopened, err := svc.SetCompleted(ctx, done.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
}

func TestTaskService_GenerateRecurring_Idempotent(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewTaskService(testutil.TestUserID, r.tasks, r.uow, obs)

	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tmpl := testutil.NewTestTask("Flashcards", testutil.WithTaskDue(start), testutil.WithRecurrence(domain.RecurDaily, 1))
	require.NoError(t, r.tasks.Create(ctx, tmpl))

	created, err := svc.GenerateRecurring(ctx, now)
	require.NoError(t, err)
	require.Len(t, created, 1)
	child := created[0]
	require.NotNil(t, child.ParentTaskID)
	assert.Equal(t, tmpl.ID, *child.ParentTaskID)
	assert.Equal(t, "2026-03-04", child.DueDate.Format("2006-01-02"))
	assert.Nil(t, child.RecurrenceRule)

	created, err = svc.GenerateRecurring(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, created, "second run on the same day creates nothing")

	all, err := r.tasks.List(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "generate-recurring", obs.events[0].Name)
	assert.Equal(t, 1, obs.events[0].Fields["created"])
	assert.Equal(t, 0, obs.events[1].Fields["created"])
}

func TestTaskService_GenerateRecurring_RollbackOnFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, title := range []string{"Flashcards", "Stretch"} {
		tmpl := testutil.NewTestTask(title, testutil.WithTaskDue(start), testutil.WithRecurrence(domain.RecurDaily, 1))
		require.NoError(t, r.tasks.Create(ctx, tmpl))
	}

	// ExecContext #1 and #2 insert the two occurrences.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     r.db,
		FailOn: 2,
		Err:    fmt.Errorf("injected insert failure"),
	}
	svc := NewTaskService(testutil.TestUserID, r.tasks, failUoW)

	_, err := svc.GenerateRecurring(ctx, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")

	all, err := r.tasks.List(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Len(t, all, 2, "only the templates remain")
}
