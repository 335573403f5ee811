package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategories(t *testing.T) {
	cats, err := parseCategories([]string{"Homework:40, Final Exam:35%", "lab:Labs:25"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{ID: "homework", Name: "Homework", Weight: 40},
		{ID: "final-exam", Name: "Final Exam", Weight: 35},
		{ID: "lab", Name: "Labs", Weight: 25},
	}, cats)

	_, err = parseCategories([]string{"Homework"})
	assert.Error(t, err)
	_, err = parseCategories([]string{"Homework:lots"})
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "final-exam", slug("  Final   Exam "))
	assert.Equal(t, "quiz-1", slug("Quiz #1"))
	assert.Equal(t, "", slug("!!"))
}

func TestParseDeadline(t *testing.T) {
	d, err := parseDeadline("2026-03-04T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), *d)

	d, err = parseDeadline("2026-03-04")
	require.NoError(t, err)
	local := d.In(time.Local)
	assert.Equal(t, 23, local.Hour())
	assert.Equal(t, 59, local.Minute())

	d, err = parseDeadline("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDeadline("next tuesday")
	assert.Error(t, err)
}

func TestParseEarnedAndFraction(t *testing.T) {
	v, err := parseEarned("42.5")
	require.NoError(t, err)
	assert.Equal(t, 42.5, *v)

	v, err = parseEarned("none")
	require.NoError(t, err)
	assert.Nil(t, v)

	earned, possible, err := parseFraction("45/50")
	require.NoError(t, err)
	assert.Equal(t, 45.0, earned)
	assert.Equal(t, 50.0, possible)

	_, _, err = parseFraction("45/0")
	assert.Error(t, err)
	_, _, err = parseFraction("45")
	assert.Error(t, err)
}

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz"}

	got, err := resolveID("course", "xyz", ids)
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	got, err = resolveID("course", "abc", ids)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = resolveID("course", "ab", ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = resolveID("course", "q", ids)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = resolveID("course", "", ids)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTerminalNotifier_HoldQueuesLines(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf)
	ctx := context.Background()

	n.Notify(ctx, "first", domain.NotifyInfo)
	n.Hold()
	n.Notify(ctx, "second", domain.NotifySuccess)
	assert.NotContains(t, buf.String(), "second")

	n.Release()
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "✔ second")

	var nilNotifier *TerminalNotifier
	assert.NotPanics(t, func() {
		nilNotifier.Hold()
		nilNotifier.Release()
	})
}
