package grades

import "github.com/alexanderramin/semester/internal/domain"

// CategoryGrade is one category's standing within a course.
type CategoryGrade struct {
	Category domain.Category
	Earned   float64
	Possible float64
	Graded   int
	Total    int
	// Percent is nil when the category has no graded work or no points.
	Percent *float64
}

// Breakdown reports each category of course in declared order. Assignments
// with an unknown category are not listed.
func Breakdown(course *domain.Course, assignments []*domain.Assignment) []CategoryGrade {
	own := assignmentsForCourse(course.ID, assignments)
	out := make([]CategoryGrade, 0, len(course.Categories))
	for _, cat := range course.Categories {
		cg := CategoryGrade{Category: cat}
		for _, a := range own {
			if a.CategoryID != cat.ID {
				continue
			}
			cg.Total++
			if !a.IsGraded() {
				continue
			}
			cg.Graded++
			cg.Earned += *a.PointsEarned
			cg.Possible += a.PointsPossible
		}
		if cg.Graded > 0 && cg.Possible > 0 {
			p := cg.Earned / cg.Possible * 100
			cg.Percent = &p
		}
		out = append(out, cg)
	}
	return out
}
