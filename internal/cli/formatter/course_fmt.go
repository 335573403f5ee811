package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/grades"
	"github.com/charmbracelet/lipgloss"
)

// CourseSwatch renders a small block in the course's color.
func CourseSwatch(color string) string {
	if color == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// SourceLabel names where a course or assignment came from.
func SourceLabel(ref *domain.ExternalRef) string {
	if ref == nil {
		return Dim("manual")
	}
	return StylePurple.Render(string(ref.Provider))
}

// FormatCourseList renders every course with its current grade. Grades are
// looked up in report by course ID.
func FormatCourseList(courses []*domain.Course, report *contract.GradeReport) string {
	if len(courses) == 0 {
		return Dim("No courses yet. Add one with: semester course add --name \"...\"") + "\n"
	}

	views := make(map[string]contract.CourseGradeView, len(courses))
	if report != nil {
		for _, v := range report.Courses {
			views[v.CourseID] = v
		}
	}

	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		v := views[c.ID]
		rows = append(rows, []string{
			TruncID(c.ID),
			CourseSwatch(c.Color) + " " + Bold(c.DisplayCode()),
			c.Name,
			FormatPoints(c.Credits),
			FormatPercent(v.Grade.Percent),
			letterOrNA(v.Grade),
			SourceLabel(c.ExternalRef),
		})
	}
	return RenderTable([]string{"ID", "CODE", "NAME", "CREDITS", "GRADE", "LETTER", "SOURCE"}, rows, 3, 4)
}

// FormatCourseDetail renders one course with its category breakdown and
// assignments.
func FormatCourseDetail(course *domain.Course, view *contract.CourseGradeView, assignments []*domain.Assignment, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header(course.DisplayCode() + "  " + course.Name))
	b.WriteString("\n")

	pairs := [][2]string{
		{"ID", course.ID},
		{"Credits", FormatPoints(course.Credits)},
		{"Source", SourceLabel(course.ExternalRef)},
	}
	if view != nil {
		pairs = append(pairs,
			[2]string{"Grade", FormatPercent(view.Grade.Percent) + "  " + letterOrNA(view.Grade)},
			[2]string{"Graded", fmt.Sprintf("%d of %d", view.Graded, view.Total)},
		)
	}
	pairs = append(pairs, [2]string{"Scale", grades.FormatScale(course.GradingScale)})
	b.WriteString(RenderPairs(pairs))

	if view != nil && len(view.Categories) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatBreakdown(view.Categories))
	}

	if len(assignments) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatAssignmentList(assignments, map[string]*domain.Course{course.ID: course}, now))
	}
	return b.String()
}

// FormatBreakdown renders one row per grading category.
func FormatBreakdown(categories []grades.CategoryGrade) string {
	rows := make([][]string, 0, len(categories))
	for _, cg := range categories {
		bar := Dim("no graded work")
		if cg.Percent != nil {
			bar = RenderProgress(*cg.Percent/100, 16)
		}
		rows = append(rows, []string{
			cg.Category.Name,
			FormatPoints(cg.Category.Weight) + "%",
			fmt.Sprintf("%s/%s", FormatPoints(cg.Earned), FormatPoints(cg.Possible)),
			fmt.Sprintf("%d/%d", cg.Graded, cg.Total),
			bar,
		})
	}
	return RenderTable([]string{"CATEGORY", "WEIGHT", "POINTS", "GRADED", "STANDING"}, rows, 1)
}

// FormatCategories renders a course's categories as id:name:weight lines.
func FormatCategories(course *domain.Course) string {
	if len(course.Categories) == 0 {
		return Dim("No grading categories.") + "\n"
	}
	rows := make([][]string, 0, len(course.Categories))
	for _, c := range course.Categories {
		rows = append(rows, []string{c.ID, c.Name, FormatPoints(c.Weight) + "%"})
	}
	out := RenderTable([]string{"ID", "NAME", "WEIGHT"}, rows, 2)
	if total := course.TotalWeight(); total != 100 {
		out += StyleYellow.Render(fmt.Sprintf("Weights sum to %s%%; grades are renormalised.", FormatPoints(total))) + "\n"
	}
	return out
}

func letterOrNA(g grades.CourseGrade) string {
	if g.Letter == "" || g.Letter == grades.LetterNA {
		return Dim(grades.LetterNA)
	}
	if g.Percent == nil {
		return Bold(g.Letter)
	}
	return PercentStyle(*g.Percent).Bold(true).Render(g.Letter)
}
