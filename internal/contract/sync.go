package contract

import (
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/reconcile"
)

type ConnectRequest struct {
	Provider    domain.Provider `validate:"required,oneof=canvas blackboard moodle"`
	InstanceURL string          `validate:"omitempty,hostname|url"`
	AccessToken string
}

type SyncReport struct {
	Results []reconcile.ConnectionResult
}

// Failed counts connections that ended in error.
func (r SyncReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == domain.SyncError {
			n++
		}
	}
	return n
}

// Totals sums counters across every connection.
func (r SyncReport) Totals() reconcile.Totals {
	var t reconcile.Totals
	for _, res := range r.Results {
		rt := res.Totals()
		t.Created += rt.Created
		t.Inserted += rt.Inserted
		t.Updated += rt.Updated
		t.Unchanged += rt.Unchanged
		t.Failed += rt.Failed
		t.Errored += rt.Errored
	}
	return t
}

type ImportCourseRequest struct {
	ConnectionID string `validate:"required"`
	ExternalID   string `validate:"required"`
}
