package temporal

import (
	"fmt"
	"strings"
	"time"

	"github.com/ticktools/tickdone/internal/ticktick"
)

// CalendarDate is a timezone-independent calendar day.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Clock abstracts "now" so classification can be made deterministic in
// tests. LocalToday captures now at invocation time; callers needing
// replayability must inject a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Classifier decides which calendar day "today" is and classifies tasks
// as due today or overdue relative to a reference timezone. All
// comparisons are by calendar date, not by instant: a task due at 23:59
// in the reference zone is due today until that zone's midnight,
// regardless of the task's own authoring zone. Daylight-saving
// transitions are handled by the timezone database; no manual offset
// arithmetic happens here.
type Classifier struct {
	clock Clock
}

// NewClassifier creates a Classifier. A nil clock means the system
// clock.
func NewClassifier(clock Clock) *Classifier {
	if clock == nil {
		clock = systemClock{}
	}
	return &Classifier{clock: clock}
}

// LocalToday returns the current date as observed in zoneName, falling
// back to UTC's current date when the zone is empty or unresolvable.
func (c *Classifier) LocalToday(zoneName string) CalendarDate {
	loc := time.UTC
	if strings.TrimSpace(zoneName) != "" {
		if l, err := time.LoadLocation(zoneName); err == nil {
			loc = l
		}
	}
	return DateOf(c.clock.Now().In(loc))
}

// IsDueToday reports whether the task's due date falls on today's
// calendar date in referenceZone. The task's own TimeZone field is
// deliberately not consulted: that field governs display only, while
// the reference zone decides what "today" means.
func (c *Classifier) IsDueToday(task ticktick.Task, referenceZone string) bool {
	due, ok := dueCalendarDate(task, referenceZone)
	if !ok {
		return false
	}
	return due == c.LocalToday(referenceZone)
}

// IsOverdue reports whether the task's due date is strictly earlier
// than today's calendar date in referenceZone. Completed tasks are
// never overdue.
func (c *Classifier) IsOverdue(task ticktick.Task, referenceZone string) bool {
	if task.IsCompleted() {
		return false
	}
	due, ok := dueCalendarDate(task, referenceZone)
	if !ok {
		return false
	}
	return due.Before(c.LocalToday(referenceZone))
}

// dueCalendarDate resolves the task's due instant to a calendar date in
// the reference zone, falling back to the instant's UTC date when the
// zone is empty or unresolvable.
func dueCalendarDate(task ticktick.Task, referenceZone string) (CalendarDate, bool) {
	if task.DueDate == "" {
		return CalendarDate{}, false
	}
	instant, ok := NormalizeTimestamp(task.DueDate)
	if !ok {
		return CalendarDate{}, false
	}

	loc := time.UTC
	if strings.TrimSpace(referenceZone) != "" {
		if l, err := time.LoadLocation(referenceZone); err == nil {
			loc = l
		}
	}
	return DateOf(instant.In(loc)), true
}

// ConvertTaskTimes returns a copy of the task with its date fields
// rendered in the task's own display zone. The input is never mutated:
// only the copy carries converted values, so a caller's only reference
// stays intact.
func ConvertTaskTimes(task ticktick.Task) ticktick.Task {
	zone := task.TimeZone
	if task.StartDate != "" {
		task.StartDate = ConvertToLocal(task.StartDate, zone)
	}
	if task.DueDate != "" {
		task.DueDate = ConvertToLocal(task.DueDate, zone)
	}
	if task.ModifiedTime != "" {
		task.ModifiedTime = ConvertToLocal(task.ModifiedTime, zone)
	}
	if task.CreatedTime != "" {
		task.CreatedTime = ConvertToLocal(task.CreatedTime, zone)
	}
	return task
}

// ConvertTasksTimes applies ConvertTaskTimes to every task, returning a
// new slice.
func ConvertTasksTimes(tasks []ticktick.Task) []ticktick.Task {
	if tasks == nil {
		return nil
	}
	out := make([]ticktick.Task, len(tasks))
	for i, t := range tasks {
		out[i] = ConvertTaskTimes(t)
	}
	return out
}
