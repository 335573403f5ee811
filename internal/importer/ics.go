package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/semester/internal/domain"
)

const (
	icsDateTime = "20060102T150405Z"
	icsDate     = "20060102"
	icsMaxLine  = 75
)

// ICS renders dated assignments and open tasks as an iCalendar feed. Each
// event carries a display alarm one day before it starts.
func ICS(courses []*domain.Course, assignments []*domain.Assignment, tasks []*domain.Task, now time.Time) string {
	codes := make(map[string]string, len(courses))
	for _, c := range courses {
		codes[c.ID] = c.DisplayCode()
	}

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//semester//calendar export//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "X-WR-CALNAME:Semester")

	stamp := now.UTC().Format(icsDateTime)
	for _, a := range assignments {
		if a.DueDate == nil {
			continue
		}
		summary := a.Title
		if code := codes[a.CourseID]; code != "" {
			summary = code + ": " + a.Title
		}
		desc := fmt.Sprintf("%g points", a.PointsPossible)
		if a.IsGraded() {
			desc = fmt.Sprintf("Graded %g/%g", *a.PointsEarned, a.PointsPossible)
		}
		writeEvent(&b, event{
			uid:     "assignment-" + a.ID + "@semester",
			stamp:   stamp,
			start:   "DTSTART:" + a.DueDate.UTC().Format(icsDateTime),
			summary: summary,
			desc:    desc,
		})
	}
	for _, t := range tasks {
		if t.DueDate == nil || t.Completed {
			continue
		}
		writeEvent(&b, event{
			uid:     "task-" + t.ID + "@semester",
			stamp:   stamp,
			start:   "DTSTART;VALUE=DATE:" + t.DueDate.Format(icsDate),
			summary: t.Title,
			desc:    fmt.Sprintf("Priority %s, about %d min", t.Priority, t.EstMinutes),
		})
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

type event struct {
	uid, stamp, start, summary, desc string
}

func writeEvent(b *strings.Builder, e event) {
	writeLine(b, "BEGIN:VEVENT")
	writeLine(b, "UID:"+e.uid)
	writeLine(b, "DTSTAMP:"+e.stamp)
	writeLine(b, e.start)
	writeLine(b, "SUMMARY:"+escapeText(e.summary))
	writeLine(b, "DESCRIPTION:"+escapeText(e.desc))
	writeLine(b, "BEGIN:VALARM")
	writeLine(b, "TRIGGER:-P1D")
	writeLine(b, "ACTION:DISPLAY")
	writeLine(b, "DESCRIPTION:"+escapeText(e.summary))
	writeLine(b, "END:VALARM")
	writeLine(b, "END:VEVENT")
}

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

func escapeText(s string) string {
	return icsEscaper.Replace(s)
}

// writeLine emits one content line, folding at 75 octets without
// splitting a UTF-8 sequence.
func writeLine(b *strings.Builder, line string) {
	limit := icsMaxLine
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// Continuation lines start with a space, which counts.
		limit = icsMaxLine - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}

func isRuneStart(c byte) bool {
	return c&0xC0 != 0x80
}
