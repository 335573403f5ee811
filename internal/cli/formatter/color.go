package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/priority"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PercentStyle colors a grade percent: green from 90, yellow from 70,
// red below.
func PercentStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 90:
		return StyleGreen
	case pct >= 70:
		return StyleYellow
	default:
		return StyleRed
	}
}

// ScoreStyle colors a panic priority score.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 60:
		return StyleRed
	case score >= 30:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// InsightBadge returns a colored marker such as "● CRITICAL".
func InsightBadge(p priority.InsightPriority) string {
	label := "● " + strings.ToUpper(string(p))
	switch p {
	case priority.InsightCritical:
		return StyleRed.Render(label)
	case priority.InsightHigh:
		return StyleYellow.Render(label)
	case priority.InsightMedium:
		return StyleBlue.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// SyncStatusPill returns a colored indicator for a connection's last sync.
func SyncStatusPill(status domain.SyncStatus) string {
	switch status {
	case domain.SyncSuccess:
		return StyleGreen.Render("● Synced")
	case domain.SyncError:
		return StyleRed.Render("✖ Error")
	case domain.SyncNever:
		return StyleDim.Render("○ Never")
	default:
		return StyleDim.Render(string(status))
	}
}

// TaskPriorityPill colors a task priority.
func TaskPriorityPill(p domain.TaskPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ high")
	case domain.PriorityMedium:
		return StyleYellow.Render("● medium")
	case domain.PriorityLow:
		return StyleDim.Render("▽ low")
	default:
		return StyleDim.Render(string(p))
	}
}

// NotifyMarker is the prefix printed before a notification line.
func NotifyMarker(level domain.NotifyLevel) string {
	switch level {
	case domain.NotifySuccess:
		return StyleGreen.Render("✔")
	case domain.NotifyWarning:
		return StyleYellow.Render("!")
	case domain.NotifyError:
		return StyleRed.Render("✖")
	default:
		return StyleBlue.Render("•")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
