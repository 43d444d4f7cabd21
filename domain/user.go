package domain

// Assignee is the denormalized user snapshot embedded in a task. It may lag
// behind the user directory; the id is authoritative.
type Assignee struct {
	ID        int    `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

// UserFull is a directory entry as returned by GET /users.
type UserFull struct {
	ID          int    `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatarUrl"`
	Description string `json:"description,omitempty"`
	TasksCount  int    `json:"tasksCount"`
	TeamID      int    `json:"teamId"`
	TeamName    string `json:"teamName"`
}

// UserTask is the per-user task row returned by GET /users/{id}/tasks.
type UserTask struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	BoardName   string   `json:"boardName"`
}
