package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/lms"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Store is the persistence the engine reconciles against. Upserts insert
// unknown IDs and update known ones; an insert that collides on
// (provider, external id) must fail with domain.ErrConflict.
type Store interface {
	ListCourses(ctx context.Context, userID string) ([]*domain.Course, error)
	ListAssignments(ctx context.Context, userID string) ([]*domain.Assignment, error)
	UpsertCourse(ctx context.Context, c *domain.Course) error
	UpsertAssignment(ctx context.Context, a *domain.Assignment) error
}

// Notifier is a fire-and-forget message sink.
type Notifier interface {
	Notify(ctx context.Context, message string, level domain.NotifyLevel)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, domain.NotifyLevel) {}

// Engine reconciles LMS data into the local store.
type Engine struct {
	provider lms.Provider
	store    Store
	notifier Notifier
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
	parallel int
}

type Option func(*Engine)

func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// WithParallelism bounds how many external courses of one connection are
// reconciled at once. Values below one mean sequential.
func WithParallelism(n int) Option {
	return func(e *Engine) { e.parallel = n }
}

func NewEngine(provider lms.Provider, store Store, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		store:    store,
		notifier: noopNotifier{},
		logger:   slog.Default(),
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
		parallel: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.parallel < 1 {
		e.parallel = 1
	}
	return e
}

// index holds the locally known external records of one user, keyed by
// ExternalRef.Key.
type index struct {
	mu          sync.Mutex
	courses     map[string]*domain.Course
	assignments map[string]*domain.Assignment
}

func newIndex(courses []*domain.Course, assignments []*domain.Assignment) *index {
	idx := &index{
		courses:     make(map[string]*domain.Course),
		assignments: make(map[string]*domain.Assignment),
	}
	for _, c := range courses {
		if c.IsExternal() {
			idx.courses[c.ExternalRef.Key()] = c
		}
	}
	for _, a := range assignments {
		if a.IsExternal() {
			idx.assignments[a.ExternalRef.Key()] = a
		}
	}
	return idx
}

func (x *index) course(key string) *domain.Course {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.courses[key]
}

func (x *index) putCourse(c *domain.Course) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.courses[c.ExternalRef.Key()] = c
}

func (x *index) assignment(key string) *domain.Assignment {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.assignments[key]
}

func (x *index) putAssignment(a *domain.Assignment) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.assignments[a.ExternalRef.Key()] = a
}

func (e *Engine) loadIndex(ctx context.Context, userID string) (*index, error) {
	courses, err := e.store.ListCourses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	assignments, err := e.store.ListAssignments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	return newIndex(courses, assignments), nil
}

// SyncAll reconciles each connection in turn. A failing connection does
// not stop the others.
func (e *Engine) SyncAll(ctx context.Context, conns []*domain.LMSConnection) []ConnectionResult {
	results := make([]ConnectionResult, 0, len(conns))
	for _, conn := range conns {
		results = append(results, e.SyncConnection(ctx, conn))
	}
	return results
}

// SyncConnection imports every course the provider reports for conn and
// reconciles their assignments. The connection fails only when its course
// list or the local state cannot be read; per-course and per-assignment
// failures are recorded in the result and the run continues.
func (e *Engine) SyncConnection(ctx context.Context, conn *domain.LMSConnection) ConnectionResult {
	result := ConnectionResult{
		ConnectionID: conn.ID,
		Provider:     conn.Provider,
		StartedAt:    e.now(),
	}
	logger := e.logger.With("connection", conn.ID, "provider", conn.Provider)

	finish := func() ConnectionResult {
		result.FinishedAt = e.now()
		e.report(ctx, logger, result)
		return result
	}

	externals, err := e.provider.FetchCourses(ctx, conn)
	if err != nil {
		result.Status = domain.SyncError
		result.Err = fmt.Errorf("fetching courses: %w", err)
		return finish()
	}

	idx, err := e.loadIndex(ctx, conn.UserID)
	if err != nil {
		result.Status = domain.SyncError
		result.Err = err
		return finish()
	}

	result.Courses = make([]CourseResult, len(externals))
	g := new(errgroup.Group)
	g.SetLimit(e.parallel)
	for i, ext := range externals {
		g.Go(func() error {
			result.Courses[i] = e.syncCourse(ctx, conn, ext, idx, logger)
			return nil
		})
	}
	_ = g.Wait()

	result.Status = domain.SyncSuccess
	return finish()
}

// ImportCourse imports a single external course and its assignments.
func (e *Engine) ImportCourse(ctx context.Context, conn *domain.LMSConnection, ext lms.ExternalCourse) CourseResult {
	logger := e.logger.With("connection", conn.ID, "provider", conn.Provider)
	idx, err := e.loadIndex(ctx, conn.UserID)
	if err != nil {
		return CourseResult{ExternalID: ext.ExternalID, Name: ext.Name, Err: err}
	}
	return e.syncCourse(ctx, conn, ext, idx, logger)
}

func (e *Engine) report(ctx context.Context, logger *slog.Logger, result ConnectionResult) {
	t := result.Totals()
	switch {
	case result.Status == domain.SyncError:
		logger.Error("lms sync failed", "error", result.Err)
		e.notifier.Notify(ctx, fmt.Sprintf("%s sync failed: %v", result.Provider, result.Err), domain.NotifyError)
	case result.Partial():
		logger.Warn("lms sync partial",
			"courses", len(result.Courses), "inserted", t.Inserted, "updated", t.Updated,
			"failed", t.Failed, "courses_failed", t.Errored)
		e.notifier.Notify(ctx, fmt.Sprintf("%s sync finished with %d failed assignment(s) and %d failed course(s)",
			result.Provider, t.Failed, t.Errored), domain.NotifyWarning)
	default:
		logger.Info("lms sync complete",
			"courses", len(result.Courses), "created", t.Created, "inserted", t.Inserted,
			"updated", t.Updated, "unchanged", t.Unchanged)
		e.notifier.Notify(ctx, fmt.Sprintf("%s sync complete: %d new course(s), %d new and %d updated assignment(s)",
			result.Provider, t.Created, t.Inserted, t.Updated), domain.NotifySuccess)
	}
}

func (e *Engine) syncCourse(ctx context.Context, conn *domain.LMSConnection, ext lms.ExternalCourse, idx *index, logger *slog.Logger) CourseResult {
	res := CourseResult{ExternalID: ext.ExternalID, Name: ext.Name}
	logger = logger.With("external_course", ext.ExternalID)

	key := domain.ExternalRef{Provider: conn.Provider, ExternalID: ext.ExternalID}.Key()
	course := idx.course(key)
	if course == nil {
		created, err := e.importCourse(ctx, conn, ext, idx, logger)
		if err != nil {
			res.Err = err
			logger.Warn("course import failed", "error", err)
			return res
		}
		course = created
		res.Created = true
	}
	res.CourseID = course.ID
	res.Name = course.Name

	if !course.SyncEnabled {
		res.Skipped = true
		return res
	}

	items, err := e.provider.FetchAssignments(ctx, conn, ext.ExternalID)
	if err != nil {
		res.Err = fmt.Errorf("fetching assignments: %w", err)
		logger.Warn("assignment fetch failed", "error", err)
		return res
	}

	for _, item := range items {
		outcome, err := e.reconcileAssignment(ctx, conn, course, item, idx)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Errorf("assignment %s: %w", item.ExternalID, err))
			logger.Warn("assignment reconcile failed", "external_assignment", item.ExternalID, "error", err)
			continue
		}
		switch outcome {
		case outcomeInserted:
			res.Inserted++
		case outcomeUpdated:
			res.Updated++
		default:
			res.Unchanged++
		}
	}
	logger.Debug("course reconciled",
		"inserted", res.Inserted, "updated", res.Updated, "unchanged", res.Unchanged, "failed", res.Failed)
	return res
}

// importCourse creates the local course, fetching grading groups and the
// grading scale concurrently. Either fetch failing falls back to defaults.
func (e *Engine) importCourse(ctx context.Context, conn *domain.LMSConnection, ext lms.ExternalCourse, idx *index, logger *slog.Logger) (*domain.Course, error) {
	var (
		groups []lms.GradingGroup
		scale  domain.GradingScale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = e.provider.FetchGradingGroups(gctx, conn, ext.ExternalID)
		if err != nil {
			logger.Warn("grading groups unavailable, using default categories", "error", err)
			groups = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scale, err = e.provider.FetchGradingScale(gctx, conn, ext.ExternalID, ext.GradingStandardID)
		if err != nil {
			logger.Warn("grading scale unavailable, using default scale", "error", err)
			scale = nil
		}
		return nil
	})
	_ = g.Wait()

	course := MapCourse(ext, conn.Provider, groups, scale)
	now := e.now()
	course.ID = e.newID()
	course.UserID = conn.UserID
	course.CreatedAt = now
	course.UpdatedAt = now

	err := e.store.UpsertCourse(ctx, course)
	if errors.Is(err, domain.ErrConflict) {
		existing, lerr := e.findCourse(ctx, conn.UserID, course.ExternalRef.Key())
		if lerr != nil {
			return nil, lerr
		}
		idx.putCourse(existing)
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating course: %w", err)
	}
	idx.putCourse(course)
	return course, nil
}

func (e *Engine) findCourse(ctx context.Context, userID, key string) (*domain.Course, error) {
	courses, err := e.store.ListCourses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reloading courses: %w", err)
	}
	for _, c := range courses {
		if c.IsExternal() && c.ExternalRef.Key() == key {
			return c, nil
		}
	}
	return nil, fmt.Errorf("course %s: %w", key, domain.ErrConflict)
}

type outcome int

const (
	outcomeUnchanged outcome = iota
	outcomeInserted
	outcomeUpdated
)

func (e *Engine) reconcileAssignment(ctx context.Context, conn *domain.LMSConnection, course *domain.Course, ext lms.ExternalAssignment, idx *index) (outcome, error) {
	key := domain.ExternalRef{Provider: conn.Provider, ExternalID: ext.ExternalID}.Key()
	if local := idx.assignment(key); local != nil {
		return e.updateAssignment(ctx, local, ext, course, idx)
	}

	a := MapAssignment(ext, conn.Provider, course)
	now := e.now()
	a.ID = e.newID()
	a.UserID = conn.UserID
	a.CreatedAt = now
	a.UpdatedAt = now

	err := e.store.UpsertAssignment(ctx, a)
	if errors.Is(err, domain.ErrConflict) {
		// Someone else inserted the same external record; treat it as
		// already imported.
		local, lerr := e.findAssignment(ctx, conn.UserID, key)
		if lerr != nil {
			return outcomeUnchanged, lerr
		}
		idx.putAssignment(local)
		return e.updateAssignment(ctx, local, ext, course, idx)
	}
	if err != nil {
		return outcomeUnchanged, fmt.Errorf("inserting: %w", err)
	}
	idx.putAssignment(a)
	return outcomeInserted, nil
}

func (e *Engine) updateAssignment(ctx context.Context, local *domain.Assignment, ext lms.ExternalAssignment, course *domain.Course, idx *index) (outcome, error) {
	updated := *local
	if !ApplyExternal(&updated, ext, course) {
		return outcomeUnchanged, nil
	}
	updated.UpdatedAt = e.now()
	if err := e.store.UpsertAssignment(ctx, &updated); err != nil {
		return outcomeUnchanged, fmt.Errorf("updating: %w", err)
	}
	idx.putAssignment(&updated)
	return outcomeUpdated, nil
}

func (e *Engine) findAssignment(ctx context.Context, userID, key string) (*domain.Assignment, error) {
	assignments, err := e.store.ListAssignments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reloading assignments: %w", err)
	}
	for _, a := range assignments {
		if a.IsExternal() && a.ExternalRef.Key() == key {
			return a, nil
		}
	}
	return nil, fmt.Errorf("assignment %s: %w", key, domain.ErrConflict)
}
