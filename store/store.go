package store

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"boardsync/domain"
)

// Gateway is the remote API surface the store drives. The store treats every
// failure uniformly: the carried message becomes the recorded error.
type Gateway interface {
	Boards(ctx context.Context) ([]domain.Board, error)
	Users(ctx context.Context) ([]domain.UserFull, error)
	Tasks(ctx context.Context) ([]domain.Task, error)
	BoardTasks(ctx context.Context, boardID int) ([]domain.Task, error)
	CreateTask(ctx context.Context, in domain.CreateTaskInput) (int, error)
	UpdateTask(ctx context.Context, id int, in domain.UpdateTaskInput) (string, error)
	UpdateTaskStatus(ctx context.Context, id int, status domain.Status) (string, error)
}

const (
	msgBoardsLoaded     = "boards loaded"
	msgUsersLoaded      = "users loaded"
	msgTasksLoaded      = "tasks loaded"
	msgBoardTasksLoaded = "board tasks loaded"
	msgTaskCreated      = "task created"
	msgTaskUpdated      = "task updated"
	msgStatusUpdated    = "task status updated"
	msgRequestFailed    = "request failed"
)

// Store owns the client state and is its only writer. Every operation runs
// the same three-phase lifecycle: a synchronous pending transition, a single
// gateway call, then exactly one of a fulfilled or rejected commit. A
// rejected commit records the error and touches nothing else, so prior state
// survives any failure intact.
//
// Overlapping operations are neither deduplicated nor ordered: when two
// loads of the same collection race, the later response wins, and IsLoading
// is a single flag shared by all operations (last writer wins).
type Store struct {
	mu    sync.Mutex
	gw    Gateway
	log   *log.Logger
	state State

	subs    map[int]chan struct{}
	nextSub int
}

// New creates a Store over the given gateway.
func New(gw Gateway, logger *log.Logger) *Store {
	if gw == nil {
		panic("store.New: gateway is nil")
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Store{gw: gw, log: logger, subs: map[int]chan struct{}{}}
}

// Snapshot returns a deep copy of the current state. The copy shares no
// storage with the store, so readers never observe a half-applied commit.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers for change signals. The channel receives one signal
// per committed transition, coalesced when the receiver lags. The returned
// function detaches the subscription.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// LoadBoards replaces the cached board list.
func (s *Store) LoadBoards(ctx context.Context) error {
	s.begin()
	boards, err := s.gw.Boards(ctx)
	if err != nil {
		return s.reject("load_boards", err)
	}
	s.fulfill(msgBoardsLoaded, func(st *State) {
		st.Boards = boards
	})
	return nil
}

// LoadUsers replaces the cached user directory.
func (s *Store) LoadUsers(ctx context.Context) error {
	s.begin()
	users, err := s.gw.Users(ctx)
	if err != nil {
		return s.reject("load_users", err)
	}
	s.fulfill(msgUsersLoaded, func(st *State) {
		st.Users = users
	})
	return nil
}

// LoadTasks replaces the full, unfiltered task list.
func (s *Store) LoadTasks(ctx context.Context) error {
	s.begin()
	tasks, err := s.gw.Tasks(ctx)
	if err != nil {
		return s.reject("load_tasks", err)
	}
	s.fulfill(msgTasksLoaded, func(st *State) {
		st.Tasks = tasks
	})
	return nil
}

// LoadBoardTasks fetches boardID's tasks and replaces the projection
// wholesale. The previous board's columns are discarded, never merged.
func (s *Store) LoadBoardTasks(ctx context.Context, boardID int) error {
	s.begin()
	tasks, err := s.gw.BoardTasks(ctx, boardID)
	if err != nil {
		return s.reject("load_board_tasks", err)
	}
	grouped := domain.GroupByStatus(tasks)
	s.fulfill(msgBoardTasksLoaded, func(st *State) {
		st.BoardTasks = grouped
		st.CurrentBoardID = boardID
		st.HasBoard = true
	})
	return nil
}

// CreateTask persists a new task (t.ID is ignored) and, once the server has
// assigned an id, appends the task to the flat list — and to the projection
// when it belongs to the current board. Status defaults to Backlog.
func (s *Store) CreateTask(ctx context.Context, t domain.Task) error {
	s.begin()
	id, err := s.gw.CreateTask(ctx, domain.CreateTaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		AssigneeID:  t.AssigneeID,
		BoardID:     t.BoardID,
		BoardName:   t.BoardName,
	})
	if err != nil {
		return s.reject("create_task", err)
	}
	created := t
	created.ID = id
	if created.Status == "" {
		created.Status = domain.StatusBacklog
	}
	created.Assignee = domain.Assignee{ID: t.AssigneeID}
	s.fulfill(msgTaskCreated, func(st *State) {
		st.Tasks = append(st.Tasks, created)
		if st.HasBoard && created.BoardID == st.CurrentBoardID {
			st.BoardTasks.Append(created)
		}
	})
	return nil
}

// UpdateTask replaces the task with t.ID everywhere it is held. In the
// projection the task moves columns when its status changed and is replaced
// in place (keeping its slot) when it did not. A task outside the current
// board's projection only touches the flat list.
func (s *Store) UpdateTask(ctx context.Context, t domain.Task) error {
	s.begin()
	_, err := s.gw.UpdateTask(ctx, t.ID, domain.UpdateTaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		AssigneeID:  t.AssigneeID,
	})
	if err != nil {
		return s.reject("update_task", err)
	}
	updated := t
	updated.Assignee = domain.Assignee{ID: t.AssigneeID}
	s.fulfill(msgTaskUpdated, func(st *State) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == updated.ID {
				st.Tasks[i] = updated
				break
			}
		}
		old, ok := st.BoardTasks.Find(updated.ID)
		if !ok {
			return
		}
		if old != updated.Status {
			st.BoardTasks.Remove(updated.ID)
			st.BoardTasks.Append(updated)
			return
		}
		bucket := st.BoardTasks.Bucket(old)
		for i := range *bucket {
			if (*bucket)[i].ID == updated.ID {
				(*bucket)[i] = updated
				break
			}
		}
	})
	return nil
}

// UpdateTaskStatus changes only the status of the task with the given id.
// The flat list holds the authoritative field values: the entry there is
// patched, the id is stripped from every projection column, and the patched
// task is appended to the column named by the new status when it belongs to
// the current board. Stripping all columns first guarantees no duplication
// even if prior state had drifted.
func (s *Store) UpdateTaskStatus(ctx context.Context, id int, status domain.Status) error {
	s.begin()
	if _, err := s.gw.UpdateTaskStatus(ctx, id, status); err != nil {
		return s.reject("update_task_status", err)
	}
	s.fulfill(msgStatusUpdated, func(st *State) {
		var moved *domain.Task
		for i := range st.Tasks {
			if st.Tasks[i].ID == id {
				st.Tasks[i].Status = status
				moved = &st.Tasks[i]
				break
			}
		}
		st.BoardTasks.Remove(id)
		if moved != nil && st.HasBoard && moved.BoardID == st.CurrentBoardID {
			st.BoardTasks.Append(*moved)
		}
	})
	return nil
}

// ClearError resets the recorded error without touching anything else.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
	s.notifyLocked()
}

// ShowNotification displays an arbitrary message, overwriting the slot.
func (s *Store) ShowNotification(message string, severity Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notification = Notification{Open: true, Message: message, Severity: severity}
	s.notifyLocked()
}

// HideNotification closes the notification slot, keeping its last message.
func (s *Store) HideNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notification.Open = false
	s.notifyLocked()
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = true
	s.state.Err = ""
	s.notifyLocked()
}

func (s *Store) fulfill(message string, apply func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.state)
	s.state.IsLoading = false
	s.state.Notification = Notification{Open: true, Message: message, Severity: SeveritySuccess}
	s.notifyLocked()
}

func (s *Store) reject(op string, err error) error {
	msg := err.Error()
	if msg == "" {
		msg = msgRequestFailed
	}
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Err = msg
	s.state.Notification = Notification{Open: true, Message: msg, Severity: SeverityError}
	s.notifyLocked()
	s.mu.Unlock()
	s.log.WithError(err).WithField("op", op).Error("operation rejected")
	return err
}
