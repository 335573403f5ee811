package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/lms"
	"github.com/alexanderramin/semester/internal/reconcile"
)

// FormatConnections renders the LMS connection list.
func FormatConnections(conns []*domain.LMSConnection, now time.Time) string {
	if len(conns) == 0 {
		return Dim("No LMS connections. Add one with: semester lms connect --provider canvas") + "\n"
	}
	rows := make([][]string, 0, len(conns))
	for _, c := range conns {
		mode := StyleGreen.Render("live")
		if c.IsSimulated() {
			mode = Dim("simulated")
		}
		last := Dim("never")
		if c.LastSync != nil {
			last = RelativeDateFrom(*c.LastSync, now)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			StylePurple.Render(string(c.Provider)),
			c.InstanceURL,
			mode,
			SyncStatusPill(c.SyncStatus),
			last,
		})
	}
	return RenderTable([]string{"ID", "PROVIDER", "INSTANCE", "MODE", "STATUS", "LAST SYNC"}, rows)
}

// FormatRemoteCourses renders the courses a provider offers for import.
func FormatRemoteCourses(courses []lms.ExternalCourse) string {
	if len(courses) == 0 {
		return Dim("The provider returned no courses.") + "\n"
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{c.ExternalID, Bold(c.Code), c.Name, Dim(c.Term)})
	}
	return RenderTable([]string{"EXTERNAL ID", "CODE", "NAME", "TERM"}, rows)
}

// FormatCourseResult renders one reconciled course as a single line.
func FormatCourseResult(r reconcile.CourseResult) string {
	name := domain.CoalesceStr(r.Name, r.ExternalID)
	switch {
	case r.Skipped:
		return fmt.Sprintf("%s %s %s", Dim("○"), name, Dim("sync disabled"))
	case r.Err != nil:
		return fmt.Sprintf("%s %s %s", StyleRed.Render("✖"), name, StyleRed.Render(r.Err.Error()))
	}

	marker := StyleGreen.Render("✔")
	if r.Failed > 0 {
		marker = StyleYellow.Render("!")
	}
	parts := []string{
		fmt.Sprintf("%d new", r.Inserted),
		fmt.Sprintf("%d updated", r.Updated),
		fmt.Sprintf("%d unchanged", r.Unchanged),
	}
	if r.Failed > 0 {
		parts = append(parts, StyleYellow.Render(fmt.Sprintf("%d failed", r.Failed)))
	}
	line := fmt.Sprintf("%s %s %s", marker, name, Dim(strings.Join(parts, ", ")))
	if r.Created {
		line += " " + StyleBlue.Render("(imported)")
	}
	return line
}

// FormatConnectionResult renders a connection heading and its course lines.
func FormatConnectionResult(r reconcile.ConnectionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", SyncStatusPill(r.Status), StylePurple.Render(string(r.Provider)), TruncID(r.ConnectionID))
	if r.Err != nil {
		fmt.Fprintf(&b, "  %s\n", StyleRed.Render(r.Err.Error()))
		return b.String()
	}
	for _, c := range r.Courses {
		fmt.Fprintf(&b, "  %s\n", FormatCourseResult(c))
	}
	if len(r.Courses) == 0 {
		fmt.Fprintf(&b, "  %s\n", Dim("no courses"))
	}
	return b.String()
}

// FormatSyncReport renders every connection result and a totals line.
func FormatSyncReport(report *contract.SyncReport) string {
	if len(report.Results) == 0 {
		return Dim("No LMS connections to sync.") + "\n"
	}
	var b strings.Builder
	for _, r := range report.Results {
		b.WriteString(FormatConnectionResult(r))
	}
	t := report.Totals()
	summary := fmt.Sprintf("%d course(s) imported, %d new, %d updated, %d unchanged",
		t.Created, t.Inserted, t.Updated, t.Unchanged)
	b.WriteString("\n")
	if failed := report.Failed(); failed > 0 {
		summary += fmt.Sprintf(", %d connection(s) failed", failed)
		b.WriteString(StyleYellow.Render(summary) + "\n")
	} else {
		b.WriteString(StyleGreen.Render(summary) + "\n")
	}
	return b.String()
}
