package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/lms"
	"github.com/alexanderramin/semester/internal/reconcile"
	"github.com/alexanderramin/semester/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStore_SimulatedSyncIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	conn := testutil.NewTestConnection(domain.ProviderCanvas)
	require.NoError(t, NewSQLiteConnectionRepo(db).Create(ctx, conn))

	engine := reconcile.NewEngine(lms.NewSimulatedProvider(clock), NewSyncStore(db),
		reconcile.WithClock(clock),
		reconcile.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		reconcile.WithParallelism(2),
	)

	first := engine.SyncConnection(ctx, conn)
	require.Equal(t, domain.SyncSuccess, first.Status)
	require.False(t, first.Partial())

	courses, err := NewSQLiteCourseRepo(db).List(ctx, conn.UserID)
	require.NoError(t, err)
	assignments, err := NewSQLiteAssignmentRepo(db).List(ctx, conn.UserID)
	require.NoError(t, err)
	assert.Len(t, courses, 4)
	assert.Len(t, assignments, 8)
	assert.Equal(t, 8, first.Totals().Inserted)

	second := engine.SyncConnection(ctx, conn)
	require.Equal(t, domain.SyncSuccess, second.Status)
	totals := second.Totals()
	assert.Zero(t, totals.Created)
	assert.Zero(t, totals.Inserted)
	assert.Zero(t, totals.Updated, "unchanged provider data must not rewrite rows")
	assert.Equal(t, 8, totals.Unchanged)

	coursesAfter, err := NewSQLiteCourseRepo(db).List(ctx, conn.UserID)
	require.NoError(t, err)
	assignmentsAfter, err := NewSQLiteAssignmentRepo(db).List(ctx, conn.UserID)
	require.NoError(t, err)
	assert.Len(t, coursesAfter, 4)
	require.Len(t, assignmentsAfter, 8)
	before := make(map[string]time.Time, len(assignments))
	for _, a := range assignments {
		before[a.ID] = a.UpdatedAt
	}
	for _, a := range assignmentsAfter {
		updatedAt, ok := before[a.ID]
		require.True(t, ok, "assignment %s appeared on the second run", a.ID)
		assert.True(t, updatedAt.Equal(a.UpdatedAt))
	}
}

func TestSyncStore_ImportedCourseKeepsProviderCategories(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	clock := func() time.Time { return time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC) }

	conn := testutil.NewTestConnection(domain.ProviderCanvas)
	engine := reconcile.NewEngine(lms.NewSimulatedProvider(clock), NewSyncStore(db),
		reconcile.WithClock(clock),
		reconcile.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	res := engine.ImportCourse(ctx, conn, lms.ExternalCourse{ExternalID: "canvas_c1", Name: "Introduction to Psychology", GradingStandardID: "1"})
	require.NoError(t, res.Err)
	require.True(t, res.Created)

	course, err := NewSQLiteCourseRepo(db).GetByID(ctx, res.CourseID)
	require.NoError(t, err)
	assert.True(t, course.SyncEnabled)
	assert.Len(t, course.Categories, 4)
	assert.NotEmpty(t, course.GradingScale)

	assignments, err := NewSQLiteAssignmentRepo(db).ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	for _, a := range assignments {
		_, ok := course.Category(a.CategoryID)
		assert.True(t, ok, "assignment %s should land in a known category", a.Title)
	}
}

// fractionalProvider serves one course whose assignment is due at a
// sub-second instant.
type fractionalProvider struct {
	due time.Time
}

func (p fractionalProvider) FetchCourses(context.Context, *domain.LMSConnection) ([]lms.ExternalCourse, error) {
	return []lms.ExternalCourse{{ExternalID: "c-1", Name: "Optics", Code: "PHYS 220"}}, nil
}

func (p fractionalProvider) FetchAssignments(context.Context, *domain.LMSConnection, string) ([]lms.ExternalAssignment, error) {
	due := p.due
	return []lms.ExternalAssignment{{
		ExternalID:     "a-1",
		Title:          "Lab report",
		DueDate:        &due,
		PointsPossible: 20,
		Status:         "missing",
		GroupID:        "g-1",
	}}, nil
}

func (p fractionalProvider) FetchGradingGroups(context.Context, *domain.LMSConnection, string) ([]lms.GradingGroup, error) {
	return []lms.GradingGroup{{ID: "g-1", Name: "Labs", Weight: 100}}, nil
}

func (p fractionalProvider) FetchGradingScale(context.Context, *domain.LMSConnection, string, string) (domain.GradingScale, error) {
	return nil, nil
}

func TestSyncStore_SubSecondDueDateIsStable(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	clock := func() time.Time { return time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC) }

	conn := testutil.NewTestConnection(domain.ProviderCanvas)
	provider := fractionalProvider{due: time.Date(2026, 2, 20, 23, 59, 59, 500_000_000, time.UTC)}
	engine := reconcile.NewEngine(provider, NewSyncStore(db),
		reconcile.WithClock(clock),
		reconcile.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	first := engine.SyncConnection(ctx, conn)
	require.Equal(t, domain.SyncSuccess, first.Status)
	assert.Equal(t, 1, first.Totals().Inserted)

	for run := 2; run <= 3; run++ {
		res := engine.SyncConnection(ctx, conn)
		require.Equal(t, domain.SyncSuccess, res.Status)
		totals := res.Totals()
		assert.Zero(t, totals.Updated, "run %d", run)
		assert.Equal(t, 1, totals.Unchanged, "run %d", run)
	}

	assignments, err := NewSQLiteAssignmentRepo(db).List(ctx, conn.UserID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.NotNil(t, assignments[0].DueDate)
	assert.True(t, assignments[0].DueDate.Equal(time.Date(2026, 2, 20, 23, 59, 59, 0, time.UTC)))
}
