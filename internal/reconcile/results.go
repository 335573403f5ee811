package reconcile

import (
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

// CourseResult reports the outcome for one external course.
type CourseResult struct {
	ExternalID string
	CourseID   string
	Name       string

	// Created is set when the course was imported during this run.
	Created bool
	// Skipped is set when the local course has sync turned off.
	Skipped bool

	Inserted  int
	Updated   int
	Unchanged int
	Failed    int

	// Err is a course-level failure: the course could not be created or
	// its assignments could not be fetched.
	Err error
	// Errors holds per-assignment failures.
	Errors []error
}

// OK reports whether every record of the course reconciled.
func (r CourseResult) OK() bool {
	return r.Err == nil && r.Failed == 0
}

// Totals sums counters over several course results.
type Totals struct {
	Created   int
	Inserted  int
	Updated   int
	Unchanged int
	Failed    int
	Errored   int
}

// ConnectionResult reports the outcome for one LMS connection.
type ConnectionResult struct {
	ConnectionID string
	Provider     domain.Provider
	Status       domain.SyncStatus
	// Err is set when the connection failed as a whole.
	Err        error
	Courses    []CourseResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Partial reports a successful connection where some courses or
// assignments failed.
func (r ConnectionResult) Partial() bool {
	if r.Status != domain.SyncSuccess {
		return false
	}
	for _, c := range r.Courses {
		if !c.OK() {
			return true
		}
	}
	return false
}

func (r ConnectionResult) Totals() Totals {
	var t Totals
	for _, c := range r.Courses {
		if c.Created {
			t.Created++
		}
		t.Inserted += c.Inserted
		t.Updated += c.Updated
		t.Unchanged += c.Unchanged
		t.Failed += c.Failed
		if c.Err != nil {
			t.Errored++
		}
	}
	return t
}
