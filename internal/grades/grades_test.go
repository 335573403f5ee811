package grades

import (
	"testing"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hwExamCourse() *domain.Course {
	return &domain.Course{
		ID:   "c1",
		Name: "Calculus",
		Categories: []domain.Category{
			{ID: "hw", Name: "Homework", Weight: 40},
			{ID: "exam", Name: "Exams", Weight: 60},
		},
	}
}

func graded(id, courseID, categoryID string, earned, possible float64) *domain.Assignment {
	return &domain.Assignment{
		ID:             id,
		CourseID:       courseID,
		CategoryID:     categoryID,
		PointsPossible: possible,
		PointsEarned:   domain.Float64Ptr(earned),
	}
}

func ungraded(id, courseID, categoryID string, possible float64) *domain.Assignment {
	return &domain.Assignment{ID: id, CourseID: courseID, CategoryID: categoryID, PointsPossible: possible}
}

func TestComputeCourseGrade_NoAssignments(t *testing.T) {
	g := ComputeCourseGrade(hwExamCourse(), nil)
	assert.Nil(t, g.Percent)
	assert.Equal(t, LetterNA, g.Letter)
	assert.False(t, g.HasGrade())
}

func TestComputeCourseGrade_NothingGraded(t *testing.T) {
	g := ComputeCourseGrade(hwExamCourse(), []*domain.Assignment{
		ungraded("a1", "c1", "hw", 100),
		ungraded("a2", "c1", "exam", 100),
	})
	assert.Nil(t, g.Percent)
	assert.Equal(t, LetterNA, g.Letter)
}

func TestComputeCourseGrade_RenormalisesAcrossGradedCategories(t *testing.T) {
	g := ComputeCourseGrade(hwExamCourse(), []*domain.Assignment{
		graded("a1", "c1", "hw", 90, 100),
		ungraded("a2", "c1", "exam", 100),
	})
	require.NotNil(t, g.Percent)
	assert.InDelta(t, 90.0, *g.Percent, 1e-9)
	assert.Equal(t, "A-", g.Letter)
}

func TestComputeCourseGrade_WeightedAcrossCategories(t *testing.T) {
	g := ComputeCourseGrade(hwExamCourse(), []*domain.Assignment{
		graded("a1", "c1", "hw", 45, 50),
		graded("a2", "c1", "hw", 45, 50),
		graded("a3", "c1", "exam", 70, 100),
	})
	require.NotNil(t, g.Percent)
	// (0.9*40 + 0.7*60) / 100 * 100
	assert.InDelta(t, 78.0, *g.Percent, 1e-9)
	assert.Equal(t, "C+", g.Letter)
}

func TestComputeCourseGrade_IgnoresOtherCourses(t *testing.T) {
	g := ComputeCourseGrade(hwExamCourse(), []*domain.Assignment{
		graded("a1", "c1", "hw", 80, 100),
		graded("a2", "c2", "hw", 0, 100),
	})
	require.NotNil(t, g.Percent)
	assert.InDelta(t, 80.0, *g.Percent, 1e-9)
}

func TestComputeCourseGrade_UnknownCategoryExcludedFromWeightedPass(t *testing.T) {
	g := ComputeCourseGrade(hwExamCourse(), []*domain.Assignment{
		graded("a1", "c1", "hw", 100, 100),
		graded("a2", "c1", "ghost", 0, 100),
	})
	require.NotNil(t, g.Percent)
	assert.InDelta(t, 100.0, *g.Percent, 1e-9)
}

func TestComputeCourseGrade_FlatFallback(t *testing.T) {
	tests := []struct {
		name   string
		course *domain.Course
		items  []*domain.Assignment
		want   float64
	}{
		{
			name:   "no categories",
			course: &domain.Course{ID: "c1"},
			items: []*domain.Assignment{
				graded("a1", "c1", "", 8, 10),
				graded("a2", "c1", "", 2, 10),
			},
			want: 50,
		},
		{
			name:   "only unknown categories graded",
			course: hwExamCourse(),
			items: []*domain.Assignment{
				graded("a1", "c1", "ghost", 30, 40),
			},
			want: 75,
		},
		{
			name: "all graded categories weigh zero",
			course: &domain.Course{ID: "c1", Categories: []domain.Category{
				{ID: "x", Name: "Extra", Weight: 0},
			}},
			items: []*domain.Assignment{
				graded("a1", "c1", "x", 9, 10),
			},
			want: 90,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ComputeCourseGrade(tt.course, tt.items)
			require.NotNil(t, g.Percent)
			assert.InDelta(t, tt.want, *g.Percent, 1e-9)
		})
	}
}

func TestComputeCourseGrade_ZeroPossibleCategorySkipped(t *testing.T) {
	g := ComputeCourseGrade(hwExamCourse(), []*domain.Assignment{
		graded("a1", "c1", "hw", 5, 0),
		graded("a2", "c1", "exam", 60, 100),
	})
	require.NotNil(t, g.Percent)
	assert.InDelta(t, 60.0, *g.Percent, 1e-9)
}

func TestComputeCourseGrade_FlatFallbackZeroPossibleIsNA(t *testing.T) {
	g := ComputeCourseGrade(&domain.Course{ID: "c1"}, []*domain.Assignment{
		graded("a1", "c1", "", 0, 0),
	})
	assert.Nil(t, g.Percent)
	assert.Equal(t, LetterNA, g.Letter)
}

func TestComputeCourseGrade_UsesCourseScale(t *testing.T) {
	course := hwExamCourse()
	course.GradingScale = domain.GradingScale{{Label: "Pass", MinPercent: 50}, {Label: "Fail", MinPercent: 0}}
	g := ComputeCourseGrade(course, []*domain.Assignment{graded("a1", "c1", "hw", 55, 100)})
	assert.Equal(t, "Pass", g.Letter)
}

func TestProjectGrade_ReplacesAndExtends(t *testing.T) {
	course := hwExamCourse()
	items := []*domain.Assignment{
		graded("a1", "c1", "hw", 50, 100),
		ungraded("a2", "c1", "exam", 100),
	}

	g := ProjectGrade(course, items, []*domain.Assignment{
		graded("a1", "", "hw", 100, 100),
		graded("", "", "exam", 80, 100),
	})
	require.NotNil(t, g.Percent)
	// hw 100% * 40 + exam 80% * 60
	assert.InDelta(t, 88.0, *g.Percent, 1e-9)

	// The input is untouched.
	assert.Equal(t, 50.0, *items[0].PointsEarned)
	assert.Equal(t, "c1", items[0].CourseID)
}
