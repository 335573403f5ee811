package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/lms"
)

// memStore is an in-memory Store that enforces the external-key uniqueness
// the SQLite schema provides.
type memStore struct {
	mu          sync.Mutex
	courses     map[string]*domain.Course
	assignments map[string]*domain.Assignment
	order       []string
	writes      int

	// beforeAssignmentInsert runs before a new assignment row is stored.
	beforeAssignmentInsert func(a *domain.Assignment)
	failAssignment         func(a *domain.Assignment) error
}

func newMemStore() *memStore {
	return &memStore{
		courses:     make(map[string]*domain.Course),
		assignments: make(map[string]*domain.Assignment),
	}
}

func (s *memStore) ListCourses(_ context.Context, userID string) ([]*domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Course
	for _, c := range s.courses {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) ListAssignments(_ context.Context, userID string) ([]*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Assignment
	for _, id := range s.order {
		a := s.assignments[id]
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) UpsertCourse(_ context.Context, c *domain.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.courses[c.ID]; !exists && c.IsExternal() {
		for _, other := range s.courses {
			if other.UserID == c.UserID && other.IsExternal() && other.ExternalRef.Key() == c.ExternalRef.Key() {
				return fmt.Errorf("insert course: %w", domain.ErrConflict)
			}
		}
	}
	cp := *c
	s.courses[c.ID] = &cp
	s.writes++
	return nil
}

func (s *memStore) UpsertAssignment(_ context.Context, a *domain.Assignment) error {
	if s.failAssignment != nil {
		if err := s.failAssignment(a); err != nil {
			return err
		}
	}
	s.mu.Lock()
	_, exists := s.assignments[a.ID]
	s.mu.Unlock()
	if !exists && s.beforeAssignmentInsert != nil {
		s.beforeAssignmentInsert(a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !exists && a.IsExternal() {
		for _, other := range s.assignments {
			if other.UserID == a.UserID && other.IsExternal() && other.ExternalRef.Key() == a.ExternalRef.Key() {
				return fmt.Errorf("insert assignment: %w", domain.ErrConflict)
			}
		}
	}
	cp := *a
	if !exists {
		s.order = append(s.order, a.ID)
	}
	s.assignments[a.ID] = &cp
	s.writes++
	return nil
}

func (s *memStore) counts() (courses, assignments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.courses), len(s.assignments)
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *memStore) assignmentByExternal(id string) *domain.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assignments {
		if a.IsExternal() && a.ExternalRef.ExternalID == id {
			cp := *a
			return &cp
		}
	}
	return nil
}

// fakeProvider serves canned data keyed by external course id.
type fakeProvider struct {
	mu          sync.Mutex
	courses     []lms.ExternalCourse
	coursesErr  error
	assignments map[string][]lms.ExternalAssignment
	assignErr   map[string]error
	groups      map[string][]lms.GradingGroup
	groupsErr   error
	scale       domain.GradingScale
	scaleErr    error

	inFlight    int
	maxInFlight int
	delay       time.Duration
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		assignments: make(map[string][]lms.ExternalAssignment),
		assignErr:   make(map[string]error),
		groups:      make(map[string][]lms.GradingGroup),
	}
}

func (p *fakeProvider) FetchCourses(context.Context, *domain.LMSConnection) ([]lms.ExternalCourse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.coursesErr != nil {
		return nil, p.coursesErr
	}
	return append([]lms.ExternalCourse(nil), p.courses...), nil
}

func (p *fakeProvider) FetchAssignments(_ context.Context, _ *domain.LMSConnection, courseID string) ([]lms.ExternalAssignment, error) {
	p.mu.Lock()
	p.inFlight++
	if p.inFlight > p.maxInFlight {
		p.maxInFlight = p.inFlight
	}
	delay := p.delay
	p.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight--
	if err := p.assignErr[courseID]; err != nil {
		return nil, err
	}
	return append([]lms.ExternalAssignment(nil), p.assignments[courseID]...), nil
}

func (p *fakeProvider) FetchGradingGroups(_ context.Context, _ *domain.LMSConnection, courseID string) ([]lms.GradingGroup, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.groupsErr != nil {
		return nil, p.groupsErr
	}
	return p.groups[courseID], nil
}

func (p *fakeProvider) FetchGradingScale(context.Context, *domain.LMSConnection, string, string) (domain.GradingScale, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scale, p.scaleErr
}

func (p *fakeProvider) setPoints(courseID, assignmentID string, earned float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := p.assignments[courseID]
	for i := range items {
		if items[i].ExternalID == assignmentID {
			items[i].PointsEarned = &earned
			items[i].Status = domain.StatusGraded
		}
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
