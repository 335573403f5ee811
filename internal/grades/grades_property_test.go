package grades

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomCourse(rng *rand.Rand) (*domain.Course, []*domain.Assignment) {
	course := &domain.Course{ID: "c1"}
	numCats := rng.Intn(5) + 1
	for i := 0; i < numCats; i++ {
		course.Categories = append(course.Categories, domain.Category{
			ID:     fmt.Sprintf("cat%d", i),
			Weight: float64(rng.Intn(60) + 1),
		})
	}
	var items []*domain.Assignment
	numItems := rng.Intn(12)
	for i := 0; i < numItems; i++ {
		possible := float64(rng.Intn(100) + 1)
		a := &domain.Assignment{
			ID:             fmt.Sprintf("a%d", i),
			CourseID:       "c1",
			CategoryID:     course.Categories[rng.Intn(numCats)].ID,
			PointsPossible: possible,
		}
		if rng.Intn(3) > 0 {
			a.PointsEarned = domain.Float64Ptr(float64(rng.Intn(int(possible) + 1)))
		}
		items = append(items, a)
	}
	return course, items
}

// Scaling every category weight by the same factor must not move the grade.
func TestComputeCourseGrade_Property_WeightScaleInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 300; trial++ {
		course, items := randomCourse(rng)
		factor := float64(rng.Intn(9) + 2)

		scaled := *course
		scaled.Categories = make([]domain.Category, len(course.Categories))
		for i, c := range course.Categories {
			c.Weight *= factor
			scaled.Categories[i] = c
		}

		a := ComputeCourseGrade(course, items)
		b := ComputeCourseGrade(&scaled, items)
		if a.Percent == nil {
			assert.Nil(t, b.Percent, "trial %d", trial)
			continue
		}
		require.NotNil(t, b.Percent, "trial %d", trial)
		assert.InDelta(t, *a.Percent, *b.Percent, 1e-9, "trial %d", trial)
		assert.Equal(t, a.Letter, b.Letter, "trial %d", trial)
	}
}

// Earned never exceeds possible in these fixtures, so the grade stays in [0, 100].
func TestComputeCourseGrade_Property_Bounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 300; trial++ {
		course, items := randomCourse(rng)
		g := ComputeCourseGrade(course, items)

		anyGraded := false
		for _, a := range items {
			if a.IsGraded() {
				anyGraded = true
			}
		}
		if !anyGraded {
			assert.Nil(t, g.Percent, "trial %d", trial)
			assert.Equal(t, LetterNA, g.Letter)
			continue
		}
		require.NotNil(t, g.Percent, "trial %d", trial)
		assert.GreaterOrEqual(t, *g.Percent, 0.0)
		assert.LessOrEqual(t, *g.Percent, 100.0+1e-9)
		assert.Equal(t, LetterFor(*g.Percent, nil), g.Letter)
	}
}

// Plugging the required final score back in as the final category's result
// reproduces the target whenever a baseline exists.
func TestRequiredFinalScore_Property_Inverts(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 200; trial++ {
		course, items := randomCourse(rng)
		if len(course.Categories) < 2 {
			continue
		}
		final := course.Categories[len(course.Categories)-1]
		var rest []*domain.Assignment
		for _, a := range items {
			if a.CategoryID != final.ID {
				rest = append(rest, a)
			}
		}
		target := float64(rng.Intn(40) + 60)

		res, err := RequiredFinalScore(course, rest, target, final.ID)
		require.NoError(t, err)
		if res.BaselineAssumed {
			continue
		}

		// Only reproduces when every other category is graded.
		allGraded := true
		for _, cat := range course.Categories[:len(course.Categories)-1] {
			found := false
			for _, a := range rest {
				if a.CategoryID == cat.ID && a.IsGraded() {
					found = true
				}
			}
			allGraded = allGraded && found
		}
		if !allGraded {
			continue
		}

		withFinal := append(append([]*domain.Assignment{}, rest...), graded("final", "c1", final.ID, res.Required, 100))
		g := ComputeCourseGrade(course, withFinal)
		require.NotNil(t, g.Percent)
		assert.InDelta(t, target, *g.Percent, 1e-6, "trial %d", trial)
	}
}
