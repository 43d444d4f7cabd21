package domain

// Task is a unit of work on a board. A zero ID means the task has not been
// persisted yet; the server assigns ids on creation.
type Task struct {
	ID          int      `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status,omitempty"`
	AssigneeID  int      `json:"assigneeId"`
	Assignee    Assignee `json:"assignee"`
	BoardID     int      `json:"boardId"`
	BoardName   string   `json:"boardName"`
}

// CreateTaskInput is the request body for creating a task.
type CreateTaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	AssigneeID  int      `json:"assigneeId"`
	BoardID     int      `json:"boardId"`
	BoardName   string   `json:"boardName"`
}

// UpdateTaskInput is the request body for a full task update.
type UpdateTaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	AssigneeID  int      `json:"assigneeId"`
}

// GroupedTasks partitions one board's tasks into the three status columns.
type GroupedTasks struct {
	Backlog    []Task `json:"Backlog"`
	InProgress []Task `json:"InProgress"`
	Done       []Task `json:"Done"`
}

// GroupByStatus partitions tasks by status. Tasks with an unknown or empty
// status land in Backlog, mirroring the default applied on creation.
func GroupByStatus(tasks []Task) GroupedTasks {
	var g GroupedTasks
	for _, t := range tasks {
		g.Append(t)
	}
	return g
}

// Append adds t to the column matching its status.
func (g *GroupedTasks) Append(t Task) {
	switch t.Status {
	case StatusInProgress:
		g.InProgress = append(g.InProgress, t)
	case StatusDone:
		g.Done = append(g.Done, t)
	default:
		g.Backlog = append(g.Backlog, t)
	}
}

// Bucket returns the column for s. Unknown statuses map to Backlog.
func (g *GroupedTasks) Bucket(s Status) *[]Task {
	switch s {
	case StatusInProgress:
		return &g.InProgress
	case StatusDone:
		return &g.Done
	default:
		return &g.Backlog
	}
}

// Find scans the columns in fixed order and returns the status of the first
// column holding a task with the given id. At most one column holds a given
// id, so first match is the only match.
func (g *GroupedTasks) Find(id int) (Status, bool) {
	for _, s := range Statuses() {
		for _, t := range *g.Bucket(s) {
			if t.ID == id {
				return s, true
			}
		}
	}
	return "", false
}

// Remove deletes every entry with the given id from all columns.
func (g *GroupedTasks) Remove(id int) {
	for _, s := range Statuses() {
		b := g.Bucket(s)
		kept := (*b)[:0]
		for _, t := range *b {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		*b = kept
	}
}

// Clone returns a deep copy of the grouping.
func (g GroupedTasks) Clone() GroupedTasks {
	return GroupedTasks{
		Backlog:    append([]Task(nil), g.Backlog...),
		InProgress: append([]Task(nil), g.InProgress...),
		Done:       append([]Task(nil), g.Done...),
	}
}

// Len returns the total number of tasks across all columns.
func (g GroupedTasks) Len() int {
	return len(g.Backlog) + len(g.InProgress) + len(g.Done)
}
