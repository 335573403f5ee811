package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/grades"
	"github.com/alexanderramin/semester/internal/priority"
	"github.com/alexanderramin/semester/internal/reconcile"
	"github.com/stretchr/testify/assert"
)

var viewNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func pct(v float64) *float64 { return &v }

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		filled int
		label  string
	}{
		{"empty", 0, 0, "  0%"},
		{"half", 0.5, 5, " 50%"},
		{"full", 1, 10, "100%"},
		{"clamps high", 1.5, 10, "100%"},
		{"clamps low", -0.5, 0, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderProgress(tt.pct, 10))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(got, emptyBlock))
			assert.True(t, strings.HasSuffix(got, tt.label))
		})
	}
}

func TestFormatGradeReport(t *testing.T) {
	report := &contract.GradeReport{
		Courses: []contract.CourseGradeView{
			{CourseID: "c1", Code: "MATH 101", Name: "Calculus", Credits: 4, Grade: grades.CourseGrade{Percent: pct(84), Letter: "B"}, Graded: 2, Total: 3, CountsTowardGPA: true},
			{CourseID: "c2", Code: "SEM 1", Name: "Seminar", Credits: 1, Grade: grades.CourseGrade{Letter: grades.LetterNA}},
		},
		GPA:        3.0,
		GPACredits: 4,
	}
	out := stripANSI(FormatGradeReport(report))

	assert.Contains(t, out, "MATH 101")
	assert.Contains(t, out, "84.0%")
	assert.Contains(t, out, "2/3")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "GPA 3.00 over 4 credits")
}

func TestFormatGradeReport_NoGPA(t *testing.T) {
	report := &contract.GradeReport{Courses: []contract.CourseGradeView{{Code: "X", Grade: grades.CourseGrade{Letter: grades.LetterNA}}}}
	assert.Contains(t, stripANSI(FormatGradeReport(report)), "GPA n/a")
}

func TestFormatFinal(t *testing.T) {
	course := &domain.Course{Code: "MATH 101"}
	resp := &contract.FinalResponse{
		Course:   course,
		Current:  grades.CourseGrade{Percent: pct(84), Letter: "B"},
		Detected: true,
		Result: grades.FinalScore{
			CategoryName: "Final Exam", Target: 90, Required: 110, Unreachable: true,
			FinalWeight: 30, TotalWeight: 100,
		},
	}
	out := stripANSI(FormatFinal(resp))
	assert.Contains(t, out, "REQUIRED FINAL · MATH 101")
	assert.Contains(t, out, "(detected)")
	assert.Contains(t, out, "110.0%")
	assert.Contains(t, out, "not reachable")

	resp.Result.Unreachable = false
	resp.Result.Required = 72
	resp.Result.BaselineAssumed = true
	out = stripANSI(FormatFinal(resp))
	assert.Contains(t, out, "You need 72.0% on Final Exam")
	assert.Contains(t, out, "assumed at 100%")
}

func TestFormatWhatIf(t *testing.T) {
	resp := &contract.WhatIfResponse{
		Course:    &domain.Course{Code: "MATH 101"},
		Current:   grades.CourseGrade{Percent: pct(84), Letter: "B"},
		Projected: grades.CourseGrade{Percent: pct(86), Letter: "B"},
	}
	out := stripANSI(FormatWhatIf(resp))
	assert.Contains(t, out, "86.0%")
	assert.Contains(t, out, "Change: +2.0 points")
	assert.Contains(t, out, "Next letter B+ at 87%")
}

func TestFormatPanic(t *testing.T) {
	due := viewNow.Add(24 * time.Hour)
	top := []priority.RankedAssignment{{
		Assignment:     &domain.Assignment{Title: "Exam 1", DueDate: &due},
		CourseCode:     "MATH 101",
		CategoryWeight: 50,
		Score:          priority.Score{PriorityScore: 74, DiffDays: 1},
	}}
	review := priority.StartOfDay(viewNow)
	resp := &contract.PanicResponse{
		GeneratedAt: viewNow,
		Ranked:      append(top, priority.RankedAssignment{Assignment: &domain.Assignment{Title: "HW"}}),
		Top:         top,
		Plan: []*domain.Task{
			{Title: "Review concepts for: Exam 1", DueDate: &review, Priority: domain.PriorityHigh, EstMinutes: 60},
		},
	}
	out := stripANSI(FormatPanic(resp))

	assert.Contains(t, out, "74")
	assert.Contains(t, out, "Exam 1")
	assert.Contains(t, out, "1 more ungraded assignment(s)")
	assert.Contains(t, out, "STUDY PLAN")
	assert.Contains(t, out, "Review concepts for: Exam 1")
	assert.Contains(t, out, "Total: 1h")
}

func TestFormatPanic_Empty(t *testing.T) {
	assert.Contains(t, FormatPanic(&contract.PanicResponse{}), "Breathe")
}

func TestFormatInsights(t *testing.T) {
	resp := &contract.InsightsResponse{Insights: []priority.Insight{
		{Priority: priority.InsightCritical, Title: "Exam 1 due soon", Message: "MATH 101 exam tomorrow", Action: "Start reviewing"},
	}}
	out := stripANSI(FormatInsights(resp))
	assert.Contains(t, out, "● CRITICAL Exam 1 due soon")
	assert.Contains(t, out, "→ Start reviewing")
}

func TestFormatSyncReport(t *testing.T) {
	report := &contract.SyncReport{Results: []reconcile.ConnectionResult{
		{
			ConnectionID: "conn-1234567890", Provider: domain.ProviderCanvas, Status: domain.SyncSuccess,
			Courses: []reconcile.CourseResult{
				{Name: "Calculus", Created: true, Inserted: 3},
				{Name: "Physics", Updated: 1, Unchanged: 2, Failed: 1},
				{Name: "Art", Skipped: true},
			},
		},
		{ConnectionID: "conn-2", Provider: domain.ProviderMoodle, Status: domain.SyncError, Err: errors.New("host unavailable")},
	}}
	out := stripANSI(FormatSyncReport(report))

	assert.Contains(t, out, "Calculus 3 new, 0 updated, 0 unchanged (imported)")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "Art sync disabled")
	assert.Contains(t, out, "host unavailable")
	assert.Contains(t, out, "1 course(s) imported, 3 new, 1 updated, 2 unchanged, 1 connection(s) failed")
}

func TestFormatConnections(t *testing.T) {
	last := viewNow.Add(-24 * time.Hour)
	conns := []*domain.LMSConnection{
		{ID: "c1", Provider: domain.ProviderCanvas, InstanceURL: "canvas.example.edu", SyncStatus: domain.SyncSuccess, LastSync: &last},
	}
	out := stripANSI(FormatConnections(conns, viewNow))
	assert.Contains(t, out, "canvas.example.edu")
	assert.Contains(t, out, "simulated")
	assert.Contains(t, out, "Yesterday")
}

func TestFormatTaskList(t *testing.T) {
	due := viewNow.Add(72 * time.Hour)
	tasks := []*domain.Task{
		{ID: "t1", Title: "Read chapter 4", Priority: domain.PriorityHigh, DueDate: &due, EstMinutes: 90},
		{ID: "t2", Title: "Gym", Priority: domain.PriorityLow, RecurrenceRule: &domain.RecurrenceRule{Frequency: domain.RecurWeekly, Interval: 2}},
		{ID: "t3", Title: "Old", Priority: domain.PriorityMedium, Completed: true},
	}
	out := stripANSI(FormatTaskList(tasks, viewNow))
	assert.Contains(t, out, "Read chapter 4")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "every 2 weeks")
	assert.Contains(t, out, "✔ Old")
}

func TestFormatCategories_WarnsOnWeightSum(t *testing.T) {
	course := &domain.Course{Categories: []domain.Category{{ID: "hw", Name: "Homework", Weight: 40}}}
	out := stripANSI(FormatCategories(course))
	assert.Contains(t, out, "Homework")
	assert.Contains(t, out, "Weights sum to 40%")
}
