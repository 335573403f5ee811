package grades

import (
	"testing"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalCourse() *domain.Course {
	return &domain.Course{
		ID: "c1",
		Categories: []domain.Category{
			{ID: "hw", Name: "Homework", Weight: 30},
			{ID: "mid", Name: "Midterm", Weight: 50},
			{ID: "fin", Name: "Final Exam", Weight: 20},
		},
	}
}

func TestRequiredFinalScore_OptimisticBaseline(t *testing.T) {
	res, err := RequiredFinalScore(finalCourse(), nil, 90, "fin")
	require.NoError(t, err)
	assert.True(t, res.BaselineAssumed)
	assert.Equal(t, 100.0, res.Baseline)
	assert.Equal(t, 100.0, res.TotalWeight)
	assert.Equal(t, 20.0, res.FinalWeight)
	assert.Equal(t, 80.0, res.OtherWeight)
	assert.Equal(t, 50.0, res.Required)
	assert.False(t, res.Unreachable)
	assert.Equal(t, "Final Exam", res.CategoryName)
}

func TestRequiredFinalScore_FromCurrentStanding(t *testing.T) {
	items := []*domain.Assignment{
		graded("a1", "c1", "hw", 80, 100),
		graded("a2", "c1", "mid", 80, 100),
		graded("a3", "c1", "fin", 0, 100),
	}
	res, err := RequiredFinalScore(finalCourse(), items, 84, "fin")
	require.NoError(t, err)
	assert.False(t, res.BaselineAssumed)
	assert.InDelta(t, 80.0, res.Baseline, 1e-9)
	// (84*100 - 80*80) / 20
	assert.InDelta(t, 100.0, res.Required, 1e-9)
	assert.False(t, res.Unreachable)
}

func TestRequiredFinalScore_Unreachable(t *testing.T) {
	items := []*domain.Assignment{
		graded("a1", "c1", "hw", 60, 100),
		graded("a2", "c1", "mid", 60, 100),
	}
	res, err := RequiredFinalScore(finalCourse(), items, 90, "fin")
	require.NoError(t, err)
	// (9000 - 60*80) / 20 = 210
	assert.InDelta(t, 210.0, res.Required, 1e-9)
	assert.True(t, res.Unreachable)
}

func TestRequiredFinalScore_Errors(t *testing.T) {
	_, err := RequiredFinalScore(finalCourse(), nil, 90, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	course := finalCourse()
	course.Categories[2].Weight = 0
	_, err = RequiredFinalScore(course, nil, 90, "fin")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRequiredFinalScore_DoesNotMutateCourse(t *testing.T) {
	course := finalCourse()
	_, err := RequiredFinalScore(course, nil, 90, "fin")
	require.NoError(t, err)
	assert.Len(t, course.Categories, 3)
}

func TestDetectFinalCategory(t *testing.T) {
	cat, ok := DetectFinalCategory(finalCourse())
	require.True(t, ok)
	assert.Equal(t, "fin", cat.ID)

	noFinal := &domain.Course{Categories: []domain.Category{
		{ID: "a", Name: "Labs"},
		{ID: "b", Name: "Project"},
	}}
	cat, ok = DetectFinalCategory(noFinal)
	require.True(t, ok)
	assert.Equal(t, "b", cat.ID)

	_, ok = DetectFinalCategory(&domain.Course{})
	assert.False(t, ok)
}
