package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourse_Category(t *testing.T) {
	c := &Course{Categories: []Category{{ID: "hw", Name: "Homework", Weight: 40}}}

	cat, ok := c.Category("hw")
	require.True(t, ok)
	assert.Equal(t, 40.0, cat.Weight)

	_, ok = c.Category("missing")
	assert.False(t, ok)
}

func TestCourse_TotalWeight(t *testing.T) {
	c := &Course{Categories: []Category{{ID: "a", Weight: 10}, {ID: "b", Weight: 15}, {ID: "c", Weight: 5}}}
	assert.Equal(t, 30.0, c.TotalWeight())
}

func TestCourse_ValidateCategories(t *testing.T) {
	cases := []struct {
		name    string
		cats    []Category
		wantErr string
	}{
		{"ok", []Category{{ID: "a", Weight: 60}, {ID: "b", Weight: 60}}, ""},
		{"empty list", nil, ""},
		{"duplicate", []Category{{ID: "a"}, {ID: "a"}}, "duplicate"},
		{"blank id", []Category{{ID: ""}}, "required"},
		{"negative", []Category{{ID: "a", Weight: -1}}, "negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := (&Course{Categories: tc.cats}).ValidateCategories()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestExternalRef_Key(t *testing.T) {
	ref := ExternalRef{Provider: ProviderCanvas, ExternalID: "42"}
	assert.Equal(t, "canvas:42", ref.Key())
}

func TestGradingScale_Lowest(t *testing.T) {
	scale := GradingScale{{Label: "B", MinPercent: 80}, {Label: "F", MinPercent: 0}, {Label: "A", MinPercent: 90}}
	low, ok := scale.Lowest()
	require.True(t, ok)
	assert.Equal(t, "F", low.Label)

	_, ok = GradingScale(nil).Lowest()
	assert.False(t, ok)
}

func TestAssignment_IsGraded(t *testing.T) {
	zero := 0.0
	assert.False(t, (&Assignment{}).IsGraded())
	assert.True(t, (&Assignment{PointsEarned: &zero}).IsGraded(), "a zero score is still a grade")
}

func TestNotFoundError_Is(t *testing.T) {
	err := NewNotFoundError("course", "c1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, `course "c1" not found`, err.Error())
}
