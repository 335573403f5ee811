package priority

import (
	"testing"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanPanicSession(t *testing.T) {
	top := []RankedAssignment{
		{Assignment: &domain.Assignment{ID: "a1", UserID: "u1", Title: "Lab 3"}},
		{Assignment: &domain.Assignment{ID: "a2", UserID: "u1", Title: "Essay"}},
	}

	tasks := PlanPanicSession(top, testNow)
	require.Len(t, tasks, 4)

	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	review := tasks[0]
	assert.Equal(t, "Review concepts for: Lab 3", review.Title)
	assert.Equal(t, domain.PriorityHigh, review.Priority)
	assert.Equal(t, 45, review.EstMinutes)
	assert.Equal(t, today, *review.DueDate)
	assert.Equal(t, "u1", review.UserID)
	assert.Empty(t, review.ID)

	practice := tasks[1]
	assert.Equal(t, "Practice problems for: Lab 3", practice.Title)
	assert.Equal(t, domain.PriorityMedium, practice.Priority)
	assert.Equal(t, 60, practice.EstMinutes)
	assert.Equal(t, tomorrow, *practice.DueDate)

	assert.Equal(t, "Review concepts for: Essay", tasks[2].Title)
	assert.Equal(t, "Practice problems for: Essay", tasks[3].Title)
}

func TestPlanPanicSession_Empty(t *testing.T) {
	assert.Empty(t, PlanPanicSession(nil, testNow))
}
