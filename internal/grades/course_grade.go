package grades

import "github.com/alexanderramin/semester/internal/domain"

// LetterNA is reported for courses with nothing graded yet.
const LetterNA = "N/A"

// CourseGrade is a course's current standing. Percent is nil when no
// graded work exists. Values are unrounded.
type CourseGrade struct {
	Percent *float64
	Letter  string
}

// HasGrade reports whether a percent was computed.
func (g CourseGrade) HasGrade() bool {
	return g.Percent != nil
}

func notAvailable() CourseGrade {
	return CourseGrade{Letter: LetterNA}
}

// ComputeCourseGrade returns the weighted grade of course over the graded
// assignments that belong to it.
//
// Each category with at least one graded assignment and a positive
// points-possible sum contributes (earned/possible)*weight; the result is
// renormalised by the weight actually used, so ungraded categories neither
// count as zero nor cap the grade. Assignments whose category is unknown
// to the course are ignored by the weighted pass. When no category
// contributes, the grade falls back to a flat earned/possible ratio over
// every graded assignment in the course.
func ComputeCourseGrade(course *domain.Course, assignments []*domain.Assignment) CourseGrade {
	own := assignmentsForCourse(course.ID, assignments)
	if len(own) == 0 {
		return notAvailable()
	}

	var weightedTotal, weightUsed float64
	for _, cat := range course.Categories {
		var earned, possible float64
		graded := 0
		for _, a := range own {
			if a.CategoryID != cat.ID || !a.IsGraded() {
				continue
			}
			earned += *a.PointsEarned
			possible += a.PointsPossible
			graded++
		}
		if graded == 0 || possible <= 0 {
			continue
		}
		weightedTotal += earned / possible * cat.Weight
		weightUsed += cat.Weight
	}

	if weightUsed == 0 {
		return flatGrade(course, own)
	}

	percent := weightedTotal / weightUsed * 100
	return CourseGrade{Percent: &percent, Letter: LetterFor(percent, course.GradingScale)}
}

func flatGrade(course *domain.Course, own []*domain.Assignment) CourseGrade {
	var earned, possible float64
	graded := 0
	for _, a := range own {
		if !a.IsGraded() {
			continue
		}
		earned += *a.PointsEarned
		possible += a.PointsPossible
		graded++
	}
	if graded == 0 || possible == 0 {
		return notAvailable()
	}
	percent := earned / possible * 100
	return CourseGrade{Percent: &percent, Letter: LetterFor(percent, course.GradingScale)}
}

// ProjectGrade computes a what-if grade. Each hypothetical assignment
// replaces the course assignment with the same ID, or is added when no
// such assignment exists.
func ProjectGrade(course *domain.Course, assignments []*domain.Assignment, hypothetical []*domain.Assignment) CourseGrade {
	own := assignmentsForCourse(course.ID, assignments)
	byID := make(map[string]int, len(own))
	projected := make([]*domain.Assignment, len(own))
	for i, a := range own {
		projected[i] = a
		byID[a.ID] = i
	}
	for _, h := range hypothetical {
		cp := *h
		cp.CourseID = course.ID
		if i, ok := byID[cp.ID]; ok && cp.ID != "" {
			projected[i] = &cp
			continue
		}
		projected = append(projected, &cp)
	}
	return ComputeCourseGrade(course, projected)
}

func assignmentsForCourse(courseID string, assignments []*domain.Assignment) []*domain.Assignment {
	var own []*domain.Assignment
	for _, a := range assignments {
		if a.CourseID == courseID {
			own = append(own, a)
		}
	}
	return own
}
