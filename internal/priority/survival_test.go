package priority

import (
	"testing"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUrgency(t *testing.T) {
	tests := []struct {
		days float64
		want float64
	}{
		{-0.5, 1.2},
		{0, 1.0},
		{1, 1.0},
		{1.5, 0.6},
		{3, 0.6},
		{5, 0.4},
		{7, 0.4},
		{7.1, 0.2},
		{30, 0.2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Urgency(dayOffset(tt.days), testNow), "days %v", tt.days)
	}
	assert.Equal(t, 0.2, Urgency(nil, testNow))
}

func TestSurvivalScoreAssignment(t *testing.T) {
	a := &domain.Assignment{ID: "a1", CourseID: "c1", CategoryID: "exam", DueDate: dayOffset(2)}
	item := SurvivalScoreAssignment(a, examCourse(), testNow)
	assert.Equal(t, KindAssignment, item.Kind)
	assert.Equal(t, "PHYS 101", item.CourseCode)
	assert.InDelta(t, 0.55*0.6+0.45*0.4, item.Score, 1e-9)
}

func TestSurvivalScoreTask_LongTaskPenalty(t *testing.T) {
	short := SurvivalScoreTask(&domain.Task{ID: "t1", DueDate: dayOffset(-1), EstMinutes: 60}, testNow)
	long := SurvivalScoreTask(&domain.Task{ID: "t2", DueDate: dayOffset(-1), EstMinutes: 61}, testNow)

	assert.InDelta(t, 0.55*1.2+0.45*0.1, short.Score, 1e-9)
	assert.InDelta(t, short.Score-0.1, long.Score, 1e-9)
	assert.Equal(t, "Misc", long.CourseCode)
}

func TestRankSurvival(t *testing.T) {
	course := examCourse()
	assignments := []*domain.Assignment{
		{ID: "a-far", CourseID: "c1", CategoryID: "hw", DueDate: dayOffset(20)},
		{ID: "a-graded", CourseID: "c1", CategoryID: "exam", DueDate: dayOffset(0), PointsEarned: domain.Float64Ptr(1)},
		{ID: "a-exam", CourseID: "c1", CategoryID: "exam", DueDate: dayOffset(0.5)},
	}
	tasks := []*domain.Task{
		{ID: "t-overdue", DueDate: dayOffset(-2), EstMinutes: 30},
		{ID: "t-done", DueDate: dayOffset(-2), Completed: true},
		{ID: "t-later", DueDate: dayOffset(6), EstMinutes: 120},
	}

	items := RankSurvival([]*domain.Course{course}, assignments, tasks, testNow)
	require.Len(t, items, 4)

	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	// a-exam 0.73, t-overdue 0.705, a-far 0.2, t-later 0.165
	assert.Equal(t, []string{"a-exam", "t-overdue", "a-far", "t-later"}, ids)
	assert.NotNil(t, items[0].Assignment)
	assert.NotNil(t, items[1].Task)
}
