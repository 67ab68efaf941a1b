// Package calendar exports tasks as an iCalendar feed so due dates show up in
// ordinary calendar apps.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"recur/internal/task"
)

// uidSpace namespaces event UIDs derived from task content.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://recur.local/tasks"))

// Build returns a VCALENDAR with one all-day VEVENT per task, starting on the
// task's next event and repeating per its interval.
func Build(tasks []*task.Task, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetProductId("-//recur//Task Export//EN")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	seen := map[string]int{}
	for _, t := range tasks {
		key := uidKey(t)
		n := seen[key]
		seen[key]++

		start := t.NextEvent()
		title := strings.TrimSpace(t.Title)
		if title == "" {
			title = "Untitled task"
		}

		event := cal.AddEvent(EventID(t, n))
		event.SetDtStampTime(now.UTC())
		event.SetSummary(title)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 0, 1))
		event.SetDescription(t.IntervalText())
		if rule := RRule(t.Interval); rule != "" {
			event.AddRrule(rule)
		}
	}
	return cal.Serialize()
}

// EventID is the UID of the n-th task (0-based) with t's title and interval.
// It does not depend on list position or completion time, so re-exports
// update events instead of duplicating them.
func EventID(t *task.Task, n int) string {
	key := fmt.Sprintf("%s\x00%d", uidKey(t), n)
	return uuid.NewSHA1(uidSpace, []byte(key)).String() + "@recur"
}

func uidKey(t *task.Task) string {
	return t.Title + "\x00" + t.Interval.String()
}

// RRule maps an interval to an RRULE value; a one-off task has none.
func RRule(iv task.Interval) string {
	if n := iv.Days(); n > 0 {
		return fmt.Sprintf("FREQ=DAILY;INTERVAL=%d", n)
	}
	tag, _ := iv.Tag()
	switch tag {
	case "day":
		return "FREQ=DAILY"
	case "week":
		return "FREQ=WEEKLY"
	case "month":
		return "FREQ=MONTHLY"
	case "year":
		return "FREQ=YEARLY"
	default:
		return ""
	}
}
