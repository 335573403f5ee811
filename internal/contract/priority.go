package contract

import (
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/priority"
)

type PanicRequest struct {
	Now  *time.Time
	TopN int
	// Persist stores the generated study tasks.
	Persist bool
}

func NewPanicRequest() PanicRequest {
	return PanicRequest{TopN: 3}
}

type PanicResponse struct {
	GeneratedAt time.Time
	Ranked      []priority.RankedAssignment
	Top         []priority.RankedAssignment
	Plan        []*domain.Task
}

type SurvivalRequest struct {
	Now   *time.Time
	Limit int
}

type SurvivalResponse struct {
	GeneratedAt time.Time
	Items       []priority.SurvivalItem
}

type InsightsResponse struct {
	GeneratedAt time.Time
	Insights    []priority.Insight
}

// ResolveNow returns *now or the current UTC time.
func ResolveNow(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return time.Now().UTC()
}
