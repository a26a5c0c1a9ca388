package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

type User struct {
	ID           int
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// SessionSnapshot is the resolved identity for one request. Handlers and
// templates read it; they never mutate it.
type SessionSnapshot struct {
	UserID   int
	Role     string
	Username string
	Avatar   string
}

func (s *SessionSnapshot) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Joke struct {
	ID        int       `json:"id"`
	Text      string    `json:"joke"`
	Category  string    `json:"category,omitempty"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteCounts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// JokeVoters pairs a joke with the usernames behind each vote type.
type JokeVoters struct {
	Joke     Joke
	Likes    []string
	Dislikes []string
}

type AdminSummary struct {
	UsersCount int
	JokesCount int
	Jokes      []JokeVoters
}
