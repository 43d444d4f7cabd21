package mockapi

import (
	"sync"

	"boardsync/domain"
)

// Dataset is the in-memory world the mock API serves. All access goes
// through its methods; returned slices are copies.
type Dataset struct {
	mu     sync.Mutex
	boards []domain.Board
	users  []domain.UserFull
	tasks  []domain.Task
	teams  []domain.TeamDetail
	nextID int
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{nextID: 1}
}

// Seed returns a dataset with a small working fixture: two teams, two
// boards, three users and a handful of tasks.
func Seed() *Dataset {
	ds := NewDataset()
	ds.boards = []domain.Board{
		{ID: 1, Name: "Core", Description: "Core platform work"},
		{ID: 2, Name: "Mobile", Description: "Mobile client"},
	}
	ds.users = []domain.UserFull{
		{ID: 1, FullName: "Ada Lovelace", Email: "ada@example.com", TeamID: 1, TeamName: "Platform"},
		{ID: 2, FullName: "Grace Hopper", Email: "grace@example.com", TeamID: 1, TeamName: "Platform"},
		{ID: 3, FullName: "Alan Turing", Email: "alan@example.com", TeamID: 2, TeamName: "Apps"},
	}
	ds.teams = []domain.TeamDetail{
		{
			ID: 1, Name: "Platform", Description: "Owns the core services",
			Boards: []domain.Board{ds.boards[0]},
			Users: []domain.User{
				{ID: 1, FullName: "Ada Lovelace", Email: "ada@example.com"},
				{ID: 2, FullName: "Grace Hopper", Email: "grace@example.com"},
			},
		},
		{
			ID: 2, Name: "Apps", Description: "Owns the clients",
			Boards: []domain.Board{ds.boards[1]},
			Users: []domain.User{
				{ID: 3, FullName: "Alan Turing", Email: "alan@example.com"},
			},
		},
	}
	seedTasks := []struct {
		title    string
		priority domain.Priority
		status   domain.Status
		assignee int
		board    int
	}{
		{"Design the schema", domain.PriorityHigh, domain.StatusDone, 1, 1},
		{"Implement the store", domain.PriorityHigh, domain.StatusInProgress, 2, 1},
		{"Write the docs", domain.PriorityLow, domain.StatusBacklog, 1, 1},
		{"Sketch the home screen", domain.PriorityMedium, domain.StatusBacklog, 3, 2},
	}
	for _, s := range seedTasks {
		_, _ = ds.CreateTask(domain.CreateTaskInput{
			Title:      s.title,
			Priority:   s.priority,
			AssigneeID: s.assignee,
			BoardID:    s.board,
		})
		ds.mu.Lock()
		ds.tasks[len(ds.tasks)-1].Status = s.status
		ds.mu.Unlock()
	}
	return ds
}

// Boards lists all boards with their current task counts.
func (d *Dataset) Boards() []domain.Board {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Board(nil), d.boards...)
}

// BoardTasks lists the tasks of one board. The second result is false when
// the board does not exist.
func (d *Dataset) BoardTasks(boardID int) ([]domain.Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.findBoard(boardID) == nil {
		return nil, false
	}
	out := make([]domain.Task, 0, 4)
	for _, t := range d.tasks {
		if t.BoardID == boardID {
			out = append(out, t)
		}
	}
	return out, true
}

// Users lists the user directory with task counts.
func (d *Dataset) Users() []domain.UserFull {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := append([]domain.UserFull(nil), d.users...)
	for i := range out {
		count := 0
		for _, t := range d.tasks {
			if t.AssigneeID == out[i].ID {
				count++
			}
		}
		out[i].TasksCount = count
	}
	return out
}

// Tasks lists every task.
func (d *Dataset) Tasks() []domain.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Task(nil), d.tasks...)
}

// Task fetches one task by id.
func (d *Dataset) Task(id int) (domain.Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// UserTasks lists the tasks assigned to one user. The second result is false
// when the user does not exist.
func (d *Dataset) UserTasks(userID int) ([]domain.UserTask, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.findUser(userID) == nil {
		return nil, false
	}
	out := make([]domain.UserTask, 0, 4)
	for _, t := range d.tasks {
		if t.AssigneeID == userID {
			out = append(out, domain.UserTask{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Priority:    t.Priority,
				Status:      t.Status,
				BoardName:   t.BoardName,
			})
		}
	}
	return out, true
}

// CreateTask validates the input, assigns the next id, stamps the board
// name and assignee snapshot, and bumps the board's task count.
func (d *Dataset) CreateTask(in domain.CreateTaskInput) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	board := d.findBoard(in.BoardID)
	if board == nil {
		return 0, errBoardNotFound
	}
	user := d.findUser(in.AssigneeID)
	if user == nil {
		return 0, errUserNotFound
	}
	id := d.nextID
	d.nextID++
	d.tasks = append(d.tasks, domain.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      domain.StatusBacklog,
		AssigneeID:  in.AssigneeID,
		Assignee: domain.Assignee{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
		},
		BoardID:   board.ID,
		BoardName: board.Name,
	})
	board.TaskCount++
	return id, nil
}

// UpdateTask replaces the mutable fields of the task with the given id.
func (d *Dataset) UpdateTask(id int, in domain.UpdateTaskInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.tasks {
		if d.tasks[i].ID != id {
			continue
		}
		user := d.findUser(in.AssigneeID)
		if user == nil {
			return errUserNotFound
		}
		t := &d.tasks[i]
		t.Title = in.Title
		t.Description = in.Description
		t.Priority = in.Priority
		t.Status = in.Status
		t.AssigneeID = in.AssigneeID
		t.Assignee = domain.Assignee{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
		}
		return nil
	}
	return errTaskNotFound
}

// UpdateTaskStatus changes only the status of the task with the given id.
func (d *Dataset) UpdateTaskStatus(id int, status domain.Status) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.tasks {
		if d.tasks[i].ID == id {
			d.tasks[i].Status = status
			return nil
		}
	}
	return errTaskNotFound
}

// Teams lists team summaries derived from the stored details.
func (d *Dataset) Teams() []domain.Team {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Team, 0, len(d.teams))
	for _, t := range d.teams {
		out = append(out, domain.Team{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			BoardsCount: len(t.Boards),
			UsersCount:  len(t.Users),
		})
	}
	return out
}

// Team fetches one team detail by id.
func (d *Dataset) Team(id int) (domain.TeamDetail, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.teams {
		if t.ID == id {
			return t, true
		}
	}
	return domain.TeamDetail{}, false
}

func (d *Dataset) findBoard(id int) *domain.Board {
	for i := range d.boards {
		if d.boards[i].ID == id {
			return &d.boards[i]
		}
	}
	return nil
}

func (d *Dataset) findUser(id int) *domain.UserFull {
	for i := range d.users {
		if d.users[i].ID == id {
			return &d.users[i]
		}
	}
	return nil
}
