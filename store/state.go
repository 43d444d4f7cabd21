package store

import "boardsync/domain"

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is the single transient message slot. A new notification
// overwrites whatever was showing, acknowledged or not.
type Notification struct {
	Open     bool     `json:"open"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// State is the whole client state tree: the flat entity collections, the
// per-status projection of the current board's tasks, and the shared
// loading/error/notification trio.
//
// BoardTasks is a view over Tasks, never an independent source of truth:
// every task in a column also exists, field for field, in Tasks.
type State struct {
	Boards []domain.Board
	Users  []domain.UserFull
	Tasks  []domain.Task

	// CurrentBoardID is only meaningful while HasBoard is true.
	CurrentBoardID int
	HasBoard       bool
	BoardTasks     domain.GroupedTasks

	IsLoading    bool
	Err          string
	Notification Notification
}

func (s State) clone() State {
	out := s
	out.Boards = append([]domain.Board(nil), s.Boards...)
	out.Users = append([]domain.UserFull(nil), s.Users...)
	out.Tasks = append([]domain.Task(nil), s.Tasks...)
	out.BoardTasks = s.BoardTasks.Clone()
	return out
}
