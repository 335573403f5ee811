package grades

import (
	"strings"

	"github.com/alexanderramin/semester/internal/domain"
)

// FinalScore is the result of inverting the course grade for a target.
type FinalScore struct {
	CategoryID   string
	CategoryName string
	Target       float64
	Required     float64
	Baseline     float64
	// BaselineAssumed is set when nothing outside the final category is
	// graded and Baseline is the optimistic 100.
	BaselineAssumed bool
	TotalWeight     float64
	FinalWeight     float64
	OtherWeight     float64
	// Unreachable is set when Required exceeds 100. It is a valid result,
	// not an error.
	Unreachable bool
}

// RequiredFinalScore returns the percent needed in finalCategoryID to end
// the course at targetPercent, assuming the student keeps their current
// standing everywhere else.
func RequiredFinalScore(course *domain.Course, assignments []*domain.Assignment, targetPercent float64, finalCategoryID string) (FinalScore, error) {
	finalCat, ok := course.Category(finalCategoryID)
	if !ok {
		return FinalScore{}, domain.NewNotFoundError("category", finalCategoryID)
	}
	if finalCat.Weight <= 0 {
		return FinalScore{}, domain.NewValidationError("category.weight", "final category must carry a positive weight")
	}

	totalWeight := course.TotalWeight()
	otherWeight := totalWeight - finalCat.Weight

	rest := *course
	rest.Categories = make([]domain.Category, 0, len(course.Categories)-1)
	for _, cat := range course.Categories {
		if cat.ID != finalCat.ID {
			rest.Categories = append(rest.Categories, cat)
		}
	}

	result := FinalScore{
		CategoryID:   finalCat.ID,
		CategoryName: finalCat.Name,
		Target:       targetPercent,
		Baseline:     100,
		TotalWeight:  totalWeight,
		FinalWeight:  finalCat.Weight,
		OtherWeight:  otherWeight,
	}
	if g := ComputeCourseGrade(&rest, assignments); g.Percent != nil {
		result.Baseline = *g.Percent
	} else {
		result.BaselineAssumed = true
	}

	result.Required = (targetPercent*totalWeight - result.Baseline*otherWeight) / finalCat.Weight
	result.Unreachable = result.Required > 100
	return result, nil
}

// DetectFinalCategory picks the category whose name mentions "final",
// falling back to the last category.
func DetectFinalCategory(course *domain.Course) (domain.Category, bool) {
	for _, cat := range course.Categories {
		if strings.Contains(strings.ToLower(cat.Name), "final") {
			return cat, true
		}
	}
	if n := len(course.Categories); n > 0 {
		return course.Categories[n-1], true
	}
	return domain.Category{}, false
}
