package lms

import (
	"context"

	"github.com/alexanderramin/semester/internal/domain"
)

// Router picks the live or simulated provider per connection. Canvas
// connections with a real token go to the live client; everything else is
// simulated.
type Router struct {
	live      Provider
	simulated Provider
}

func NewRouter(live, simulated Provider) *Router {
	return &Router{live: live, simulated: simulated}
}

// For returns the provider that serves conn.
func (r *Router) For(conn *domain.LMSConnection) Provider {
	if conn.Provider == domain.ProviderCanvas && !conn.IsSimulated() && r.live != nil {
		return r.live
	}
	return r.simulated
}

func (r *Router) FetchCourses(ctx context.Context, conn *domain.LMSConnection) ([]ExternalCourse, error) {
	return r.For(conn).FetchCourses(ctx, conn)
}

func (r *Router) FetchAssignments(ctx context.Context, conn *domain.LMSConnection, courseID string) ([]ExternalAssignment, error) {
	return r.For(conn).FetchAssignments(ctx, conn, courseID)
}

func (r *Router) FetchGradingGroups(ctx context.Context, conn *domain.LMSConnection, courseID string) ([]GradingGroup, error) {
	return r.For(conn).FetchGradingGroups(ctx, conn, courseID)
}

func (r *Router) FetchGradingScale(ctx context.Context, conn *domain.LMSConnection, courseID, standardID string) (domain.GradingScale, error) {
	return r.For(conn).FetchGradingScale(ctx, conn, courseID, standardID)
}
