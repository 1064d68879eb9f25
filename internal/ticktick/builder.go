package ticktick

import (
	"time"
)

// providerDateFormat is the encoding TickTick expects on write paths:
// millisecond precision with a numeric offset, e.g.
// "2025-08-01T16:00:00.000+0000".
const providerDateFormat = "2006-01-02T15:04:05.000-0700"

// TaskPayload is the intermediate representation of a task's
// creation/update fields prior to submission. The zone-aware fields
// (StartDate, DueDate, TimeZone) are only populated by WithDates; a
// payload built without dates carries no zone information at all.
type TaskPayload struct {
	Title     string `json:"title"`
	ProjectID string `json:"projectId,omitempty"`
	Content   string `json:"content,omitempty"`
	Priority  int    `json:"priority"`
	StartDate string `json:"startDate,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	TimeZone  string `json:"timeZone,omitempty"`
}

// TaskBuilder starts a payload for a new task with the given title.
func TaskBuilder(title string) TaskPayload {
	return TaskPayload{Title: title}
}

// WithProject sets the target project. An empty id leaves the task in
// the inbox.
func (p TaskPayload) WithProject(projectID string) TaskPayload {
	p.ProjectID = projectID
	return p
}

// WithContent sets the free-text content.
func (p TaskPayload) WithContent(content string) TaskPayload {
	p.Content = content
	return p
}

// WithPriority sets the priority.
func (p TaskPayload) WithPriority(priority int) TaskPayload {
	p.Priority = priority
	return p
}

// WithDates encodes the given wall-clock times in zoneName and attaches
// the zone to the payload. The API treats startDate/dueDate/timeZone as
// a coupled triple on write: it does not accept naive local times and
// apply zone conversion itself, so dates must arrive pre-formatted in
// the creator's stated zone. Nil times are left unset.
func (p TaskPayload) WithDates(start, due *time.Time, zoneName string) TaskPayload {
	if start != nil {
		p.StartDate = FormatDateForZone(*start, zoneName)
	}
	if due != nil {
		p.DueDate = FormatDateForZone(*due, zoneName)
	}
	if start != nil || due != nil {
		p.TimeZone = zoneName
	}
	return p
}

// FormatDateForZone encodes a wall-clock datetime in the provider's
// write format, interpreted in zoneName. The wall-clock fields of t are
// taken as-is; only the offset is derived from the zone. An empty or
// unresolvable zone falls back to UTC.
func FormatDateForZone(t time.Time, zoneName string) string {
	loc := time.UTC
	if zoneName != "" {
		if l, err := time.LoadLocation(zoneName); err == nil {
			loc = l
		}
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
	return local.Format(providerDateFormat)
}
