package lms

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

const simulatedTerm = "Spring 2026"

// SimulatedProvider serves fixed demo data. It backs connections without a
// real token and the providers that have no live client. Due dates are
// anchored to the start of the current day so repeated syncs on one day
// see identical data.
type SimulatedProvider struct {
	now func() time.Time
}

// NewSimulatedProvider creates a SimulatedProvider. A nil clock uses time.Now.
func NewSimulatedProvider(now func() time.Time) *SimulatedProvider {
	if now == nil {
		now = time.Now
	}
	return &SimulatedProvider{now: now}
}

func (p *SimulatedProvider) FetchCourses(_ context.Context, conn *domain.LMSConnection) ([]ExternalCourse, error) {
	switch conn.Provider {
	case domain.ProviderCanvas:
		return []ExternalCourse{
			{ExternalID: "canvas_c1", Name: "Introduction to Psychology", Code: "PSYCH 101", Term: simulatedTerm},
			{ExternalID: "canvas_c2", Name: "Calculus II", Code: "MATH 221", Term: simulatedTerm},
			{ExternalID: "canvas_c3", Name: "Organic Chemistry", Code: "CHEM 230", Term: simulatedTerm},
			{ExternalID: "canvas_c4", Name: "Art History", Code: "ARTS 105", Term: "Fall 2025"},
		}, nil
	case domain.ProviderMoodle:
		return []ExternalCourse{
			{ExternalID: "m_c1", Name: "World History", Code: "HIST 110", Term: simulatedTerm},
		}, nil
	case domain.ProviderBlackboard:
		return []ExternalCourse{
			{ExternalID: "bb_c1", Name: "Microeconomics", Code: "ECON 201", Term: simulatedTerm},
		}, nil
	default:
		return nil, &ProviderError{Provider: conn.Provider, Op: OpFetchCourses, Err: fmt.Errorf("unsupported provider %q", conn.Provider)}
	}
}

func (p *SimulatedProvider) FetchAssignments(_ context.Context, conn *domain.LMSConnection, courseID string) ([]ExternalAssignment, error) {
	if conn.Provider != domain.ProviderCanvas {
		return nil, nil
	}
	y, m, d := p.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	essayDue := today.AddDate(0, 0, 3)
	quizDue := today.AddDate(0, 0, 1)
	quizScore := 9.0

	return []ExternalAssignment{
		{
			ExternalID:     fmt.Sprintf("canvas_a_%s_1", courseID),
			Title:          "Midterm Essay",
			DueDate:        &essayDue,
			PointsPossible: 100,
			Status:         domain.StatusMissing,
			GroupID:        "canvas_g2",
		},
		{
			ExternalID:     fmt.Sprintf("canvas_a_%s_2", courseID),
			Title:          "Weekly Quiz 4",
			DueDate:        &quizDue,
			PointsPossible: 10,
			PointsEarned:   &quizScore,
			Status:         domain.StatusGraded,
			GroupID:        "canvas_g1",
		},
	}, nil
}

func (p *SimulatedProvider) FetchGradingGroups(_ context.Context, conn *domain.LMSConnection, _ string) ([]GradingGroup, error) {
	if conn.Provider != domain.ProviderCanvas {
		return nil, nil
	}
	return []GradingGroup{
		{ID: "canvas_g1", Name: "Homework", Weight: 20},
		{ID: "canvas_g2", Name: "Quizzes", Weight: 30},
		{ID: "canvas_g3", Name: "Midterm", Weight: 20},
		{ID: "canvas_g4", Name: "Final Exam", Weight: 30},
	}, nil
}

// FetchGradingScale ignores standardID; simulated Canvas courses always
// carry a five-step scale.
func (p *SimulatedProvider) FetchGradingScale(_ context.Context, conn *domain.LMSConnection, _, _ string) (domain.GradingScale, error) {
	if conn.Provider != domain.ProviderCanvas {
		return nil, nil
	}
	return domain.GradingScale{
		{Label: "A", MinPercent: 90},
		{Label: "B", MinPercent: 80},
		{Label: "C", MinPercent: 70},
		{Label: "D", MinPercent: 60},
		{Label: "F", MinPercent: 0},
	}, nil
}
