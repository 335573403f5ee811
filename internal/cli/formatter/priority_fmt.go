package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/priority"
)

// FormatPanic renders the top-ranked assignments and, when present, the
// generated study plan.
func FormatPanic(resp *contract.PanicResponse) string {
	if len(resp.Top) == 0 {
		return StyleGreen.Render("Nothing ungraded is waiting. Breathe.") + "\n"
	}
	now := resp.GeneratedAt

	var b strings.Builder
	b.WriteString(Header("Panic mode"))
	b.WriteString("\n")

	rows := make([][]string, 0, len(resp.Top))
	for i, r := range resp.Top {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ScoreStyle(r.PriorityScore).Render(fmt.Sprintf("%d", r.PriorityScore)),
			Truncate(r.Assignment.Title, 40),
			CourseSwatch(r.CourseColor) + " " + domain.CoalesceStr(r.CourseCode, r.CourseName),
			DueLabel(r.Assignment.DueDate, now),
			FormatPoints(r.CategoryWeight) + "%",
		})
	}
	b.WriteString(RenderTable([]string{"#", "SCORE", "ASSIGNMENT", "COURSE", "DUE", "WEIGHT"}, rows, 1, 5))
	if rest := len(resp.Ranked) - len(resp.Top); rest > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d more ungraded assignment(s) ranked lower.", rest)) + "\n")
	}

	if len(resp.Plan) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatPlan(resp.Plan))
	}
	return b.String()
}

// FormatPlan renders generated study tasks grouped by day.
func FormatPlan(plan []*domain.Task) string {
	var b strings.Builder
	b.WriteString(Header("Study plan"))
	b.WriteString("\n")

	var lastDay string
	total := 0
	for _, t := range plan {
		day := Dim("unscheduled")
		if t.DueDate != nil {
			day = t.DueDate.Format("Mon Jan 2")
		}
		if day != lastDay {
			fmt.Fprintf(&b, "%s\n", Bold(day))
			lastDay = day
		}
		fmt.Fprintf(&b, "  %s %s %s\n", TaskPriorityPill(t.Priority), t.Title, Dim(FormatMinutes(t.EstMinutes)))
		total += t.EstMinutes
	}
	b.WriteString(Dim(fmt.Sprintf("Total: %s", FormatMinutes(total))) + "\n")
	return b.String()
}

// FormatSurvival renders the merged assignment and task list.
func FormatSurvival(resp *contract.SurvivalResponse) string {
	if len(resp.Items) == 0 {
		return StyleGreen.Render("Nothing left to survive.") + "\n"
	}
	rows := make([][]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		kind := StyleBlue.Render("assignment")
		if it.Kind == priority.KindTask {
			kind = StylePurple.Render("task")
		}
		rows = append(rows, []string{
			TruncID(it.ID),
			kind,
			Truncate(it.Title, 40),
			it.CourseCode,
			DueLabel(it.DueDate, resp.GeneratedAt),
			fmt.Sprintf("%.2f", it.Urgency),
			fmt.Sprintf("%.2f", it.Impact),
			Bold(fmt.Sprintf("%.2f", it.Score)),
		})
	}
	return RenderTable([]string{"ID", "KIND", "TITLE", "COURSE", "DUE", "URGENCY", "IMPACT", "SCORE"}, rows, 5, 6, 7)
}

// FormatInsights renders one block per insight, most pressing first.
func FormatInsights(resp *contract.InsightsResponse) string {
	if len(resp.Insights) == 0 {
		return StyleGreen.Render("No insights right now. Everything is on track.") + "\n"
	}
	var b strings.Builder
	for i, in := range resp.Insights {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", InsightBadge(in.Priority), Bold(in.Title))
		fmt.Fprintf(&b, "  %s\n", in.Message)
		if in.Action != "" {
			fmt.Fprintf(&b, "  %s %s\n", StyleHeader.Render("→"), in.Action)
		}
	}
	return b.String()
}
