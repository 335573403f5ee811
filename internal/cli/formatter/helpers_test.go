package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDueLabel(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	soon := now.Add(48 * time.Hour)

	assert.Equal(t, "Mar 4 (In 2d)", stripANSI(DueLabel(&soon, now)))
	assert.Equal(t, "no date", stripANSI(DueLabel(nil, now)))
}

func TestTruncID(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	got := TruncID(id)
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	assert.Contains(t, TruncID("short"), "short")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{150, "2h 30m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.input))
		})
	}
}

func TestFormatPercentAndScore(t *testing.T) {
	pct := 84.25
	assert.Equal(t, "84.2%", stripANSI(FormatPercent(&pct)))
	assert.Equal(t, "--", stripANSI(FormatPercent(nil)))

	earned := 9.5
	assert.Equal(t, "9.5/10", stripANSI(FormatScore(&earned, 10)))
	assert.Equal(t, "-/10", stripANSI(FormatScore(nil, 10)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Problem…", Truncate("Problem set nine", 8))
}

func TestSyncStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.SyncStatus
		contains string
	}{
		{domain.SyncSuccess, "Synced"},
		{domain.SyncError, "Error"},
		{domain.SyncNever, "Never"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, SyncStatusPill(tt.status), tt.contains)
		})
	}
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("test", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderTable_RightAligned(t *testing.T) {
	out := stripANSI(RenderTable([]string{"NAME", "N"}, [][]string{{"a", "1"}, {"bb", "100"}}, 1))

	assert.Contains(t, out, "a       1\n")
	assert.Contains(t, out, "bb    100\n")
	assert.Contains(t, out, "────  ───\n")
}
