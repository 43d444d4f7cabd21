package domain

// Status is the wire code for a task's progress state. The API only ever
// speaks these codes; human-facing labels are a presentation concern.
type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses returns all statuses in board-column order.
func Statuses() []Status {
	return []Status{StatusBacklog, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the known status codes.
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority is the wire code for a task's priority.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities returns all priorities from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is one of the known priority codes.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
