package domain

// Team is a team summary as returned by GET /teams.
type Team struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BoardsCount int    `json:"boardsCount"`
	UsersCount  int    `json:"usersCount"`
}

// User is the short user record embedded in a team detail.
type User struct {
	ID          int    `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatarUrl"`
	Description string `json:"description,omitempty"`
}

// TeamDetail is the full team record returned by GET /teams/{id}.
type TeamDetail struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Boards      []Board `json:"boards"`
	Users       []User  `json:"users"`
}
