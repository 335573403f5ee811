package lms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 2000
	cfg.MaxRetries = 1
	return cfg
}

func testConn(url string) *domain.LMSConnection {
	return &domain.LMSConnection{
		ID:          "conn-1",
		Provider:    domain.ProviderCanvas,
		InstanceURL: url,
		AccessToken: "secret-token",
	}
}

func TestCanvasClient_FetchCourses_Paginates(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "active", r.URL.Query().Get("enrollment_state"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id": 12, "name": "Calculus II", "course_code": "MATH 221", "grading_standard_id": null}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v1/courses?page=2&per_page=100&enrollment_state=active>; rel="next", <%s/api/v1/courses?page=2>; rel="last"`, srv.URL, srv.URL))
		fmt.Fprint(w, `[{"id": 11, "name": "Psychology", "course_code": "PSYCH 101", "grading_standard_id": 7, "term": {"name": "Spring 2026"}}]`)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewCanvasClient(testConfig(), obs)
	courses, err := client.FetchCourses(context.Background(), testConn(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, []ExternalCourse{
		{ExternalID: "11", Name: "Psychology", Code: "PSYCH 101", Term: "Spring 2026", GradingStandardID: "7"},
		{ExternalID: "12", Name: "Calculus II", Code: "MATH 221", Term: "Current Term"},
	}, courses)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 2, obs.events[0].Pages)
	assert.Equal(t, OpFetchCourses, obs.events[0].Op)
}

func TestCanvasClient_FetchAssignments_MapsSubmissions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses/42/assignments", r.URL.Path)
		assert.Equal(t, "submission", r.URL.Query().Get("include[]"))
		fmt.Fprint(w, `[
			{"id": 1, "name": "Essay", "due_at": "2026-03-12T23:59:00Z", "points_possible": 100, "assignment_group_id": 5,
			 "submission": {"workflow_state": "graded", "score": 88.5}},
			{"id": "2", "name": "Quiz", "due_at": null, "points_possible": 10, "assignment_group_id": 6,
			 "submission": {"workflow_state": "submitted", "score": null}},
			{"id": 3, "name": "Lab", "points_possible": null, "assignment_group_id": 5,
			 "submission": {"workflow_state": "unsubmitted"}},
			{"id": 4, "name": "Reading", "assignment_group_id": 5}
		]`)
	}))
	defer srv.Close()

	client := NewCanvasClient(testConfig(), nil)
	items, err := client.FetchAssignments(context.Background(), testConn(srv.URL), "42")
	require.NoError(t, err)
	require.Len(t, items, 4)

	due := time.Date(2026, 3, 12, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "1", items[0].ExternalID)
	assert.Equal(t, "5", items[0].GroupID)
	require.NotNil(t, items[0].DueDate)
	assert.True(t, due.Equal(*items[0].DueDate))
	require.NotNil(t, items[0].PointsEarned)
	assert.Equal(t, 88.5, *items[0].PointsEarned)
	assert.Equal(t, domain.StatusGraded, items[0].Status)

	assert.Equal(t, "2", items[1].ExternalID)
	assert.Nil(t, items[1].DueDate)
	assert.Nil(t, items[1].PointsEarned)
	assert.Equal(t, domain.StatusSubmitted, items[1].Status)

	assert.Equal(t, 0.0, items[2].PointsPossible)
	assert.Equal(t, domain.StatusMissing, items[2].Status)
	assert.Equal(t, domain.StatusMissing, items[3].Status)
}

func TestCanvasStatus(t *testing.T) {
	score := 1.0
	assert.Equal(t, domain.StatusGraded, CanvasStatus("graded", nil))
	assert.Equal(t, domain.StatusGraded, CanvasStatus("submitted", &score))
	assert.Equal(t, domain.StatusSubmitted, CanvasStatus("submitted", nil))
	assert.Equal(t, domain.StatusMissing, CanvasStatus("unsubmitted", nil))
}

func TestCanvasClient_FetchGradingGroupsAndScale(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses/42/assignment_groups", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 5, "name": "Homework", "group_weight": 40}, {"id": 6, "name": "Ungraded", "group_weight": null}]`)
	})
	mux.HandleFunc("/api/v1/courses/42/grading_standards/7", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 7, "title": "Standard", "grading_scheme": [{"name": "A", "value": 0.94}, {"name": "B", "value": 0.83}, {"name": "F", "value": 0}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewCanvasClient(testConfig(), nil)
	conn := testConn(srv.URL)

	groups, err := client.FetchGradingGroups(context.Background(), conn, "42")
	require.NoError(t, err)
	assert.Equal(t, []GradingGroup{
		{ID: "5", Name: "Homework", Weight: 40},
		{ID: "6", Name: "Ungraded", Weight: 0},
	}, groups)

	scale, err := client.FetchGradingScale(context.Background(), conn, "42", "7")
	require.NoError(t, err)
	assert.Equal(t, domain.GradingScale{
		{Label: "A", MinPercent: 94},
		{Label: "B", MinPercent: 83},
		{Label: "F", MinPercent: 0},
	}, scale)

	scale, err = client.FetchGradingScale(context.Background(), conn, "42", "")
	require.NoError(t, err)
	assert.Nil(t, scale)
}

func TestCanvasClient_Unauthorized_NoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":[{"message":"Invalid access token."}]}`)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewCanvasClient(testConfig(), obs)
	_, err := client.FetchCourses(context.Background(), testConn(srv.URL))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvider)
	assert.ErrorIs(t, err, ErrUnauthorized)
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.Equal(t, OpFetchCourses, pe.Op)
	assert.Equal(t, int32(1), hits.Load())

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "UNAUTHORIZED", obs.events[0].ErrorCode)
}

func TestCanvasClient_ServerError_RetriesThenExhausts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxRetries = 2
	client := NewCanvasClient(cfg, nil)
	_, err := client.FetchAssignments(context.Background(), testConn(srv.URL), "1")

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, int32(3), hits.Load())
}

func TestCanvasClient_ServerError_RecoversOnRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewCanvasClient(testConfig(), nil)
	courses, err := client.FetchCourses(context.Background(), testConn(srv.URL))
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCanvasClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.TimeoutMs = 50
	client := NewCanvasClient(cfg, nil)
	_, err := client.FetchCourses(context.Background(), testConn(srv.URL))

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestCanvasClient_Unavailable(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRetries = 0
	client := NewCanvasClient(cfg, nil)
	_, err := client.FetchCourses(context.Background(), testConn("http://127.0.0.1:1"))

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCanvasClient_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer srv.Close()

	client := NewCanvasClient(testConfig(), nil)
	_, err := client.FetchGradingGroups(context.Background(), testConn(srv.URL), "1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestNextLink(t *testing.T) {
	h := http.Header{}
	h.Set("Link", `<https://x/api/v1/courses?page=1>; rel="current", <https://x/api/v1/courses?page=2>; rel="next"`)
	assert.Equal(t, "https://x/api/v1/courses?page=2", nextLink(h))
	assert.Equal(t, "", nextLink(http.Header{}))

	assert.Equal(t, "", sameHostLink("https://x", "https://evil/api"))
	assert.Equal(t, "https://x/a", sameHostLink("https://x", "https://x/a"))
}
