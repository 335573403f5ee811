package reconcile

import (
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/lms"
)

// Defaults applied to courses created from an LMS.
const (
	DefaultCredits = 3.0
	DefaultColor   = "#6366f1"
)

// DefaultCategories is used when the provider reports no grading groups.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat1", Name: "Assignments", Weight: 40},
		{ID: "cat2", Name: "Exams", Weight: 60},
	}
}

// MapCategories converts grading groups to categories. Duplicate ids keep
// their first occurrence and negative weights clamp to zero.
func MapCategories(groups []lms.GradingGroup) []domain.Category {
	seen := make(map[string]bool, len(groups))
	cats := make([]domain.Category, 0, len(groups))
	for _, g := range groups {
		if g.ID == "" || seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		weight := g.Weight
		if weight < 0 {
			weight = 0
		}
		cats = append(cats, domain.Category{ID: g.ID, Name: g.Name, Weight: weight})
	}
	return cats
}

// MapCourse builds the canonical course for an external course. IDs,
// owner, and timestamps are left for the caller. An empty scale means the
// default scale applies.
func MapCourse(ext lms.ExternalCourse, provider domain.Provider, groups []lms.GradingGroup, scale domain.GradingScale) *domain.Course {
	cats := MapCategories(groups)
	if len(cats) == 0 {
		cats = DefaultCategories()
	}
	course := &domain.Course{
		Name:        ext.Name,
		Code:        ext.Code,
		Credits:     DefaultCredits,
		Color:       DefaultColor,
		Categories:  cats,
		ExternalRef: &domain.ExternalRef{Provider: provider, ExternalID: ext.ExternalID},
		SyncEnabled: true,
	}
	if len(scale) > 0 {
		course.GradingScale = scale
	}
	return course
}

// MatchCategory resolves a provider group id against the course categories.
// An unmatched id falls back to the first category; matched reports whether
// the id was found. With no categories the result is "".
func MatchCategory(groupID string, categories []domain.Category) (id string, matched bool) {
	for _, cat := range categories {
		if cat.ID == groupID {
			return cat.ID, true
		}
	}
	if len(categories) == 0 {
		return "", false
	}
	return categories[0].ID, false
}

// MapAssignment builds a new canonical assignment under course.
func MapAssignment(ext lms.ExternalAssignment, provider domain.Provider, course *domain.Course) *domain.Assignment {
	categoryID, _ := MatchCategory(ext.GroupID, course.Categories)
	a := &domain.Assignment{
		UserID:         course.UserID,
		CourseID:       course.ID,
		CategoryID:     categoryID,
		Title:          ext.Title,
		DueDate:        copyTime(ext.DueDate),
		PointsPossible: ext.PointsPossible,
		PointsEarned:   copyFloat(ext.PointsEarned),
		ExternalRef: &domain.ExternalRef{
			Provider:   provider,
			ExternalID: ext.ExternalID,
			Status:     ext.Status,
		},
	}
	return a
}

// ApplyExternal refreshes the provider-owned fields of local: due date,
// points possible, points earned, status, and category. Title, details,
// and anything else the user may have edited are left alone. When the
// course has no categories the existing category is kept. It reports
// whether anything changed.
func ApplyExternal(local *domain.Assignment, ext lms.ExternalAssignment, course *domain.Course) bool {
	changed := false

	if !equalTime(local.DueDate, ext.DueDate) {
		local.DueDate = copyTime(ext.DueDate)
		changed = true
	}
	if local.PointsPossible != ext.PointsPossible {
		local.PointsPossible = ext.PointsPossible
		changed = true
	}
	if !equalFloat(local.PointsEarned, ext.PointsEarned) {
		local.PointsEarned = copyFloat(ext.PointsEarned)
		changed = true
	}
	if local.ExternalRef == nil {
		local.ExternalRef = &domain.ExternalRef{ExternalID: ext.ExternalID}
		changed = true
	}
	if local.ExternalRef.Status != ext.Status {
		ref := *local.ExternalRef
		ref.Status = ext.Status
		local.ExternalRef = &ref
		changed = true
	}
	if categoryID, _ := MatchCategory(ext.GroupID, course.Categories); categoryID != "" && categoryID != local.CategoryID {
		local.CategoryID = categoryID
		changed = true
	}
	return changed
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Truncate(time.Second).Equal(b.Truncate(time.Second))
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// copyTime drops sub-second precision, which storage does not keep.
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Truncate(time.Second)
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
