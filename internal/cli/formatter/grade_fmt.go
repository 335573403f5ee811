package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/grades"
	"github.com/charmbracelet/lipgloss"
)

// FormatGradeReport renders the per-course grade table and the GPA line.
func FormatGradeReport(report *contract.GradeReport) string {
	if len(report.Courses) == 0 {
		return Dim("No courses to report.") + "\n"
	}

	rows := make([][]string, 0, len(report.Courses))
	for _, v := range report.Courses {
		gpa := Dim("no")
		if v.CountsTowardGPA {
			gpa = StyleGreen.Render("yes")
		}
		rows = append(rows, []string{
			Bold(v.Code),
			Truncate(v.Name, 32),
			FormatPoints(v.Credits),
			FormatPercent(v.Grade.Percent),
			letterOrNA(v.Grade),
			fmt.Sprintf("%d/%d", v.Graded, v.Total),
			gpa,
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"CODE", "COURSE", "CREDITS", "GRADE", "LETTER", "GRADED", "GPA"}, rows, 2, 3))
	b.WriteString("\n")
	if report.GPACredits > 0 {
		fmt.Fprintf(&b, "%s %s %s\n",
			Bold("GPA"),
			StyleHeader.Render(fmt.Sprintf("%.2f", report.GPA)),
			Dim(fmt.Sprintf("over %s credits", FormatPoints(report.GPACredits))))
	} else {
		fmt.Fprintf(&b, "%s %s\n", Bold("GPA"), Dim("n/a (no graded courses with credits)"))
	}
	return b.String()
}

// FormatFinal renders the score needed on the final category.
func FormatFinal(resp *contract.FinalResponse) string {
	r := resp.Result
	var b strings.Builder

	category := r.CategoryName
	if resp.Detected {
		category += Dim(" (detected)")
	}
	b.WriteString(RenderPairs([][2]string{
		{"Current", FormatPercent(resp.Current.Percent) + "  " + letterOrNA(resp.Current)},
		{"Target", FormatPoints(r.Target) + "%"},
		{"Final", fmt.Sprintf("%s, %s%% of %s%%", category, FormatPoints(r.FinalWeight), FormatPoints(r.TotalWeight))},
	}))
	b.WriteString("\n")

	needed := fmt.Sprintf("%.1f%%", r.Required)
	switch {
	case r.Unreachable:
		fmt.Fprintf(&b, "%s You would need %s on %s, which is not reachable.\n",
			StyleRed.Render("✖"), StyleRed.Render(needed), r.CategoryName)
	case r.Required <= 0:
		fmt.Fprintf(&b, "%s The target is already secured; any score on %s keeps it.\n",
			StyleGreen.Render("✔"), r.CategoryName)
	default:
		fmt.Fprintf(&b, "%s You need %s on %s.\n",
			StyleGreen.Render("●"), requiredStyle(r.Required).Render(needed), r.CategoryName)
	}
	if r.BaselineAssumed {
		b.WriteString(Dim("Nothing else is graded yet, so the other categories are assumed at 100%."))
	}
	return RenderBox("Required final · "+resp.Course.DisplayCode(), strings.TrimRight(b.String(), "\n")) + "\n"
}

// FormatWhatIf renders the current and projected grade side by side.
func FormatWhatIf(resp *contract.WhatIfResponse) string {
	var b strings.Builder
	b.WriteString(Header("What if · " + resp.Course.DisplayCode()))
	b.WriteString("\n")
	b.WriteString(RenderPairs([][2]string{
		{"Current", FormatPercent(resp.Current.Percent) + "  " + letterOrNA(resp.Current)},
		{"Projected", FormatPercent(resp.Projected.Percent) + "  " + letterOrNA(resp.Projected)},
	}))
	if delta, ok := gradeDelta(resp.Current, resp.Projected); ok {
		b.WriteString(Dim(fmt.Sprintf("Change: %+.1f points", delta)) + "\n")
	}
	if resp.Projected.Percent != nil {
		if next, ok := grades.NextThreshold(*resp.Projected.Percent, resp.Course.GradingScale); ok {
			b.WriteString(Dim(fmt.Sprintf("Next letter %s at %s%%", next.Label, FormatPoints(next.MinPercent))) + "\n")
		}
	}
	return b.String()
}

// requiredStyle colors a needed score by difficulty: easy is green.
func requiredStyle(required float64) lipgloss.Style {
	switch {
	case required <= 70:
		return StyleGreen
	case required <= 90:
		return StyleYellow
	default:
		return StyleRed
	}
}

func gradeDelta(from, to grades.CourseGrade) (float64, bool) {
	if from.Percent == nil || to.Percent == nil {
		return 0, false
	}
	return *to.Percent - *from.Percent, true
}
