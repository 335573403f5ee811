package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/grades"
	"github.com/alexanderramin/semester/internal/repository"
)

type gradeService struct {
	userID      string
	courses     repository.CourseRepo
	assignments repository.AssignmentRepo
	observer    UseCaseObserver
}

func NewGradeService(
	userID string,
	courses repository.CourseRepo,
	assignments repository.AssignmentRepo,
	observers ...UseCaseObserver,
) GradeService {
	return &gradeService{
		userID:      userID,
		courses:     courses,
		assignments: assignments,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *gradeService) CourseGrade(ctx context.Context, courseID string) (*contract.CourseGradeView, error) {
	course, assignments, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	view := courseGradeView(course, assignments, grades.DefaultGradePoints())
	return &view, nil
}

// Report grades every requested course and computes the credit-weighted
// GPA over the courses whose letter has grade points.
func (s *gradeService) Report(ctx context.Context, req contract.GradeReportRequest) (report *contract.GradeReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"filtered": len(req.CourseIDs) > 0}
	defer func() {
		if report != nil {
			fields["courses"] = len(report.Courses)
		}
		observe(ctx, s.observer, "grade-report", startedAt, fields, err)
	}()

	points := req.Points
	if len(points) == 0 {
		points = grades.DefaultGradePoints()
	}

	courses, err := s.courses.List(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	courses, err = filterCourses(courses, req.CourseIDs)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.List(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}

	report = &contract.GradeReport{
		GeneratedAt: time.Now().UTC(),
		Courses:     make([]contract.CourseGradeView, 0, len(courses)),
	}
	credited := make([]grades.CreditedGrade, 0, len(courses))
	for _, c := range courses {
		view := courseGradeView(c, assignments, points)
		report.Courses = append(report.Courses, view)
		credited = append(credited, grades.CreditedGrade{Credits: c.Credits, Letter: view.Grade.Letter})
		if view.CountsTowardGPA {
			report.GPACredits += c.Credits
		}
	}
	report.GPA = grades.ComputeGPA(credited, points)
	return report, nil
}

func (s *gradeService) RequiredFinal(ctx context.Context, req contract.FinalRequest) (*contract.FinalResponse, error) {
	course, assignments, err := s.loadCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	resp := &contract.FinalResponse{
		Course:  course,
		Current: grades.ComputeCourseGrade(course, assignments),
	}
	categoryID := req.CategoryID
	if categoryID == "" {
		cat, ok := grades.DetectFinalCategory(course)
		if !ok {
			return nil, domain.NewValidationError("categories", "course has no categories to treat as the final")
		}
		categoryID = cat.ID
		resp.Detected = true
	}

	resp.Result, err = grades.RequiredFinalScore(course, assignments, req.TargetPercent, categoryID)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *gradeService) WhatIf(ctx context.Context, req contract.WhatIfRequest) (*contract.WhatIfResponse, error) {
	course, assignments, err := s.loadCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Assignment, len(assignments))
	for _, a := range assignments {
		byID[a.ID] = a
	}
	hypothetical := make([]*domain.Assignment, 0, len(req.Scores))
	for i, score := range req.Scores {
		if score.PointsEarned < 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("scores[%d].points_earned", i), "must not be negative")
		}
		h := &domain.Assignment{
			ID:             score.AssignmentID,
			CategoryID:     score.CategoryID,
			Title:          score.Title,
			PointsPossible: score.PointsPossible,
			PointsEarned:   domain.Float64Ptr(score.PointsEarned),
		}
		if score.AssignmentID != "" {
			existing, ok := byID[score.AssignmentID]
			if !ok {
				return nil, domain.NewNotFoundError("assignment", score.AssignmentID)
			}
			h.CategoryID = domain.CoalesceStr(score.CategoryID, existing.CategoryID)
			h.Title = domain.CoalesceStr(score.Title, existing.Title)
			if h.PointsPossible == 0 {
				h.PointsPossible = existing.PointsPossible
			}
		} else if h.CategoryID == "" && len(course.Categories) > 0 {
			h.CategoryID = course.Categories[0].ID
		}
		hypothetical = append(hypothetical, h)
	}

	return &contract.WhatIfResponse{
		Course:    course,
		Current:   grades.ComputeCourseGrade(course, assignments),
		Projected: grades.ProjectGrade(course, assignments, hypothetical),
	}, nil
}

func (s *gradeService) loadCourse(ctx context.Context, courseID string) (*domain.Course, []*domain.Assignment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing assignments: %w", err)
	}
	return course, assignments, nil
}

func courseGradeView(c *domain.Course, assignments []*domain.Assignment, points grades.GradePointMap) contract.CourseGradeView {
	view := contract.CourseGradeView{
		CourseID:   c.ID,
		Name:       c.Name,
		Code:       c.Code,
		Credits:    c.Credits,
		Grade:      grades.ComputeCourseGrade(c, assignments),
		Categories: grades.Breakdown(c, assignments),
	}
	for _, a := range assignments {
		if a.CourseID != c.ID {
			continue
		}
		view.Total++
		if a.IsGraded() {
			view.Graded++
		}
	}
	_, view.CountsTowardGPA = points[view.Grade.Letter]
	return view
}

func filterCourses(courses []*domain.Course, ids []string) ([]*domain.Course, error) {
	if len(ids) == 0 {
		return courses, nil
	}
	byID := make(map[string]*domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	out := make([]*domain.Course, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, domain.NewNotFoundError("course", id)
		}
		out = append(out, c)
	}
	return out, nil
}
