package lms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

// maxPages bounds pagination so a misbehaving server cannot loop forever.
const maxPages = 50

const defaultTermName = "Current Term"

// CanvasClient implements Provider against the Canvas REST API.
type CanvasClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewCanvasClient creates a Provider that talks to live Canvas instances.
func NewCanvasClient(cfg Config, observer Observer) *CanvasClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &CanvasClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// canvasID accepts ids encoded either as JSON numbers or strings.
type canvasID string

func (id *canvasID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = canvasID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = canvasID(n.String())
	return nil
}

type canvasCourse struct {
	ID                canvasID `json:"id"`
	Name              string   `json:"name"`
	CourseCode        string   `json:"course_code"`
	GradingStandardID canvasID `json:"grading_standard_id"`
	Term              *struct {
		Name string `json:"name"`
	} `json:"term"`
}

type canvasSubmission struct {
	WorkflowState string   `json:"workflow_state"`
	Score         *float64 `json:"score"`
}

type canvasAssignment struct {
	ID                canvasID          `json:"id"`
	Name              string            `json:"name"`
	DueAt             *time.Time        `json:"due_at"`
	PointsPossible    *float64          `json:"points_possible"`
	AssignmentGroupID canvasID          `json:"assignment_group_id"`
	Submission        *canvasSubmission `json:"submission"`
}

type canvasGroup struct {
	ID          canvasID `json:"id"`
	Name        string   `json:"name"`
	GroupWeight *float64 `json:"group_weight"`
}

type canvasStandard struct {
	ID            canvasID `json:"id"`
	Title         string   `json:"title"`
	GradingScheme []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	} `json:"grading_scheme"`
}

// CanvasStatus maps a submission to the canonical assignment status.
func CanvasStatus(workflowState string, score *float64) string {
	switch {
	case workflowState == "graded" || score != nil:
		return domain.StatusGraded
	case workflowState == "submitted":
		return domain.StatusSubmitted
	default:
		return domain.StatusMissing
	}
}

func (c *CanvasClient) FetchCourses(ctx context.Context, conn *domain.LMSConnection) ([]ExternalCourse, error) {
	q := url.Values{}
	q.Set("enrollment_state", "active")
	q.Add("include[]", "term")

	var out []ExternalCourse
	err := c.fetchPages(ctx, conn, OpFetchCourses, "/api/v1/courses", q, func(body []byte) error {
		var page []canvasCourse
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		for _, cc := range page {
			ext := ExternalCourse{
				ExternalID:        string(cc.ID),
				Name:              cc.Name,
				Code:              cc.CourseCode,
				Term:              defaultTermName,
				GradingStandardID: string(cc.GradingStandardID),
			}
			if cc.Term != nil && cc.Term.Name != "" {
				ext.Term = cc.Term.Name
			}
			out = append(out, ext)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CanvasClient) FetchAssignments(ctx context.Context, conn *domain.LMSConnection, courseID string) ([]ExternalAssignment, error) {
	q := url.Values{}
	q.Add("include[]", "submission")

	path := fmt.Sprintf("/api/v1/courses/%s/assignments", url.PathEscape(courseID))
	var out []ExternalAssignment
	err := c.fetchPages(ctx, conn, OpFetchAssignments, path, q, func(body []byte) error {
		var page []canvasAssignment
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		for _, ca := range page {
			ext := ExternalAssignment{
				ExternalID: string(ca.ID),
				Title:      ca.Name,
				DueDate:    ca.DueAt,
				GroupID:    string(ca.AssignmentGroupID),
				Status:     domain.StatusMissing,
			}
			if ca.PointsPossible != nil {
				ext.PointsPossible = *ca.PointsPossible
			}
			if ca.Submission != nil {
				ext.Status = CanvasStatus(ca.Submission.WorkflowState, ca.Submission.Score)
				ext.PointsEarned = ca.Submission.Score
			}
			out = append(out, ext)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CanvasClient) FetchGradingGroups(ctx context.Context, conn *domain.LMSConnection, courseID string) ([]GradingGroup, error) {
	path := fmt.Sprintf("/api/v1/courses/%s/assignment_groups", url.PathEscape(courseID))
	var out []GradingGroup
	err := c.fetchPages(ctx, conn, OpFetchGradingGroups, path, url.Values{}, func(body []byte) error {
		var page []canvasGroup
		if err := json.Unmarshal(body, &page); err != nil {
			return err
		}
		for _, g := range page {
			group := GradingGroup{ID: string(g.ID), Name: g.Name}
			if g.GroupWeight != nil {
				group.Weight = *g.GroupWeight
			}
			out = append(out, group)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchGradingScale loads a course grading standard. Canvas stores scheme
// values as fractions of one; they are converted to percents.
func (c *CanvasClient) FetchGradingScale(ctx context.Context, conn *domain.LMSConnection, courseID, standardID string) (domain.GradingScale, error) {
	if standardID == "" {
		return nil, nil
	}
	path := fmt.Sprintf("/api/v1/courses/%s/grading_standards/%s", url.PathEscape(courseID), url.PathEscape(standardID))

	var standard canvasStandard
	err := c.fetchPages(ctx, conn, OpFetchGradingScale, path, nil, func(body []byte) error {
		trimmed := strings.TrimSpace(string(body))
		if strings.HasPrefix(trimmed, "[") {
			var list []canvasStandard
			if err := json.Unmarshal(body, &list); err != nil {
				return err
			}
			if len(list) > 0 {
				standard = list[0]
			}
			return nil
		}
		return json.Unmarshal(body, &standard)
	})
	if err != nil {
		return nil, err
	}
	if len(standard.GradingScheme) == 0 {
		return nil, nil
	}

	scale := make(domain.GradingScale, 0, len(standard.GradingScheme))
	for _, s := range standard.GradingScheme {
		scale = append(scale, domain.GradeThreshold{
			Label:      s.Name,
			MinPercent: math.Round(s.Value*100*1e4) / 1e4,
		})
	}
	return scale, nil
}

// fetchPages GETs path and every page linked by rel="next", passing each
// body to decode. The whole operation shares one timeout.
func (c *CanvasClient) fetchPages(ctx context.Context, conn *domain.LMSConnection, op Op, path string, query url.Values, decode func([]byte) error) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	base := conn.BaseURL(c.cfg.DefaultInstance)
	if query != nil && c.cfg.PerPage > 0 {
		query.Set("per_page", fmt.Sprint(c.cfg.PerPage))
	}
	next := base + path
	if len(query) > 0 {
		next += "?" + query.Encode()
	}

	event := CallEvent{Provider: domain.ProviderCanvas, Op: op}
	fail := func(status int, err error) error {
		event.LatencyMs = time.Since(start).Milliseconds()
		event.StatusCode = status
		event.ErrorCode = errorCode(err)
		c.observer.OnCallComplete(event)
		return &ProviderError{Provider: domain.ProviderCanvas, Op: op, StatusCode: status, Err: err}
	}

	for next != "" && event.Pages < maxPages {
		resp, attempts, err := c.getWithRetry(ctx, conn.AccessToken, next)
		event.Attempts += attempts
		if err != nil {
			return fail(resp.status, err)
		}
		if err := decode(resp.body); err != nil {
			return fail(resp.status, fmt.Errorf("%w: %v", ErrInvalidResponse, err))
		}
		event.Pages++
		next = sameHostLink(base, nextLink(resp.header))
	}

	event.LatencyMs = time.Since(start).Milliseconds()
	event.Success = true
	c.observer.OnCallComplete(event)
	return nil
}

type canvasResponse struct {
	body   []byte
	header http.Header
	status int
}

// statusError is a non-200 reply.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("canvas returned status %d: %s", e.code, e.body)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return true
}

func (c *CanvasClient) getWithRetry(ctx context.Context, token, rawURL string) (canvasResponse, int, error) {
	var (
		resp    canvasResponse
		lastErr error
	)
	attempts := 1 + c.cfg.MaxRetries

	i := 0
	for ; i < attempts; i++ {
		var err error
		resp, err = c.doGet(ctx, token, rawURL)
		if err == nil {
			return resp, i + 1, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			i++
			break
		}
		if !retryable(err) {
			return resp, i + 1, err
		}
	}

	if ctx.Err() != nil {
		return resp, i, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return resp, i, ErrUnavailable
	}
	return resp, i, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (c *CanvasClient) doGet(ctx context.Context, token, rawURL string) (canvasResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return canvasResponse{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return canvasResponse{}, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	resp := canvasResponse{body: body, header: httpResp.Header, status: httpResp.StatusCode}
	if err != nil {
		return resp, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case httpResp.StatusCode == http.StatusOK:
		return resp, nil
	case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
		return resp, fmt.Errorf("%w: %w", ErrUnauthorized, &statusError{code: httpResp.StatusCode, body: snippet(body)})
	default:
		return resp, &statusError{code: httpResp.StatusCode, body: snippet(body)}
	}
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

// nextLink extracts the rel="next" target from a Link header.
func nextLink(h http.Header) string {
	if h == nil {
		return ""
	}
	for _, part := range strings.Split(h.Get("Link"), ",") {
		segs := strings.Split(part, ";")
		if len(segs) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(segs[0]), "<>")
		for _, s := range segs[1:] {
			if strings.TrimSpace(s) == `rel="next"` {
				return target
			}
		}
	}
	return ""
}

// sameHostLink drops links pointing away from base so the token is never
// sent to another host.
func sameHostLink(base, link string) string {
	if link == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	l, err := url.Parse(link)
	if err != nil || l.Host != b.Host {
		return ""
	}
	return link
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
