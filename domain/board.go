package domain

// Board is a named container of tasks. Boards are read-only for the client;
// only task counts change as a side effect of task creation.
type Board struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TaskCount   int    `json:"taskCount"`
}
