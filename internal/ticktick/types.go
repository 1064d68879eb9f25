package ticktick

// Task priority levels as used by the TickTick API.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 3
	PriorityHigh   = 5
)

// Task status values. The API uses other values internally but only
// these two are classified.
const (
	StatusActive    = 0
	StatusCompleted = 2
)

// Task represents a TickTick task.
//
// Date fields are kept as raw strings because the API encodes them
// inconsistently: trailing "Z", trailing "+0000", a full offset, or no
// offset at all depending on where the task was created. Parsing and
// conversion happen in the temporal package at the point of use.
type Task struct {
	ID           string `json:"id"`
	ProjectID    string `json:"projectId,omitempty"`
	Title        string `json:"title"`
	Content      string `json:"content,omitempty"`
	Priority     int    `json:"priority"`
	Status       int    `json:"status"`
	StartDate    string `json:"startDate,omitempty"`
	DueDate      string `json:"dueDate,omitempty"`
	TimeZone     string `json:"timeZone,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	CreatedTime  string `json:"createdTime,omitempty"`
}

// IsCompleted reports whether the task has completed status.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Project represents a TickTick project (task list).
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	ViewMode string `json:"viewMode,omitempty"`
	Closed   bool   `json:"closed,omitempty"`
}

// State is a locally cached snapshot of the account's tasks and
// projects, refreshed wholesale by Sync.
type State struct {
	Tasks    []Task
	Projects []Project
	InboxID  string
}

// PriorityName returns the display name for a priority value.
// Values outside the documented set render as "Unknown".
func PriorityName(priority int) string {
	switch priority {
	case PriorityNone:
		return "None"
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// StatusName returns the display name for a status value.
func StatusName(status int) string {
	switch status {
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
