package models

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoJokes            = errors.New("no jokes available")
)

func CreateUser(db *sql.DB, username, passwordHash, role string) error {
	_, err := db.Exec(`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, passwordHash, role)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
		return ErrDuplicateUsername
	}
	return err
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	row := db.QueryRow(`SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`, username)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate verifies a username/password pair against the credential
// store. Unknown usernames and hash mismatches both return
// ErrInvalidCredentials so callers cannot distinguish them.
func Authenticate(db *sql.DB, username, password string) (*User, error) {
	u, err := GetUserByUsername(db, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func GetUserByID(db *sql.DB, id int) (*User, error) {
	row := db.QueryRow(`SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// Safe to run on every process start; the unique username makes concurrent
// starts race-free.
func EnsureAdmin(db *sql.DB, username, passwordHash string) error {
	_, err := db.Exec(`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)
        ON CONFLICT(username) DO NOTHING`, username, passwordHash, RoleAdmin)
	return err
}

func CreateSession(db *sql.DB, userID int, sessionID string, expires time.Time) error {
	// revoke existing
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE user_id = ? AND revoked_at IS NULL`, userID)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`, sessionID, userID, expires)
	return err
}

func GetSession(db *sql.DB, id string) (*Session, error) {
	row := db.QueryRow(`SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, id)
	var s Session
	var revoked sql.NullTime
	if err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &revoked); err != nil {
		return nil, err
	}
	if revoked.Valid {
		s.RevokedAt = &revoked.Time
	}
	return &s, nil
}

func RevokeSession(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

// JokeFilter narrows ListJokes. Query matches joke text as a case-insensitive
// substring; Category matches the category name exactly, ignoring case. Both
// are AND-combined when present.
type JokeFilter struct {
	Query    string
	Category string
}

const jokeSelect = `
    SELECT j.id, j.joke, COALESCE(c.name, ''), COALESCE(l.n, 0), COALESCE(d.n, 0), j.created_at
    FROM jokes j
    LEFT JOIN categories c ON c.id = j.category_id
    LEFT JOIN (SELECT joke_id, COUNT(*) AS n FROM joke_votes WHERE vote_type = 'like' GROUP BY joke_id) l ON l.joke_id = j.id
    LEFT JOIN (SELECT joke_id, COUNT(*) AS n FROM joke_votes WHERE vote_type = 'dislike' GROUP BY joke_id) d ON d.joke_id = j.id`

func ListJokes(db *sql.DB, f JokeFilter) ([]Joke, error) {
	q := jokeSelect
	where := []string{}
	args := []any{}
	if f.Query != "" {
		where = append(where, `lower(j.joke) LIKE '%' || lower(?) || '%'`)
		args = append(args, f.Query)
	}
	if f.Category != "" {
		where = append(where, `lower(c.name) = lower(?)`)
		args = append(args, f.Category)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY j.id DESC"

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var jokes []Joke
	for rows.Next() {
		var j Joke
		if err := rows.Scan(&j.ID, &j.Text, &j.Category, &j.Likes, &j.Dislikes, &j.CreatedAt); err != nil {
			return nil, err
		}
		jokes = append(jokes, j)
	}
	return jokes, rows.Err()
}

// RandomJoke picks one joke uniformly at random. Returns ErrNoJokes when the
// table is empty.
func RandomJoke(db *sql.DB) (*Joke, error) {
	row := db.QueryRow(jokeSelect + " ORDER BY RANDOM() LIMIT 1")
	var j Joke
	if err := row.Scan(&j.ID, &j.Text, &j.Category, &j.Likes, &j.Dislikes, &j.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoJokes
		}
		return nil, err
	}
	return &j, nil
}

func CreateJoke(db *sql.DB, text string, categoryID int) (int64, error) {
	res, err := db.Exec(`INSERT INTO jokes (joke, category_id) VALUES (?, ?)`, text, categoryID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func DeleteJoke(db *sql.DB, id int) error {
	_, err := db.Exec(`DELETE FROM jokes WHERE id = ?`, id)
	return err
}

func ListCategories(db *sql.DB) ([]Category, error) {
	rows, err := db.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// ToggleVote applies one click of voteType by userID on jokeID: no existing
// vote inserts one, the same vote removes it, the opposite vote switches in
// place. At most one row per (joke, user) ever exists. Returns the counts
// aggregated from the vote rows afterwards.
func ToggleVote(db *sql.DB, jokeID, userID int, voteType string) (VoteCounts, error) {
	var existing string
	err := db.QueryRow(`SELECT vote_type FROM joke_votes WHERE joke_id = ? AND user_id = ?`,
		jokeID, userID).Scan(&existing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return VoteCounts{}, err
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`INSERT INTO joke_votes (joke_id, user_id, vote_type) VALUES (?, ?, ?)`,
			jokeID, userID, voteType)
	case existing == voteType:
		_, err = db.Exec(`DELETE FROM joke_votes WHERE joke_id = ? AND user_id = ?`, jokeID, userID)
	default:
		_, err = db.Exec(`UPDATE joke_votes SET vote_type = ? WHERE joke_id = ? AND user_id = ?`,
			voteType, jokeID, userID)
	}
	if err != nil {
		return VoteCounts{}, err
	}
	return CountVotes(db, jokeID)
}

func CountVotes(db *sql.DB, jokeID int) (VoteCounts, error) {
	var vc VoteCounts
	err := db.QueryRow(`SELECT
        COUNT(CASE WHEN vote_type = 'like' THEN 1 END),
        COUNT(CASE WHEN vote_type = 'dislike' THEN 1 END)
        FROM joke_votes WHERE joke_id = ?`, jokeID).Scan(&vc.Likes, &vc.Dislikes)
	return vc, err
}

// SummarizeVotes builds the admin dashboard: total counts plus, per joke, the
// usernames behind each vote. Jokes with no votes appear with empty lists.
func SummarizeVotes(db *sql.DB) (*AdminSummary, error) {
	var sum AdminSummary
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&sum.UsersCount); err != nil {
		return nil, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM jokes`).Scan(&sum.JokesCount); err != nil {
		return nil, err
	}

	jokes, err := ListJokes(db, JokeFilter{})
	if err != nil {
		return nil, err
	}
	sum.Jokes = make([]JokeVoters, 0, len(jokes))
	byID := map[int]int{}
	for _, j := range jokes {
		byID[j.ID] = len(sum.Jokes)
		sum.Jokes = append(sum.Jokes, JokeVoters{Joke: j, Likes: []string{}, Dislikes: []string{}})
	}

	rows, err := db.Query(`SELECT v.joke_id, u.username, v.vote_type
        FROM joke_votes v JOIN users u ON u.id = v.user_id
        ORDER BY v.joke_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var jokeID int
		var username, voteType string
		if err := rows.Scan(&jokeID, &username, &voteType); err != nil {
			return nil, err
		}
		idx, ok := byID[jokeID]
		if !ok {
			continue
		}
		jv := &sum.Jokes[idx]
		switch voteType {
		case VoteLike:
			jv.Likes = append(jv.Likes, username)
		case VoteDislike:
			jv.Dislikes = append(jv.Dislikes, username)
		}
	}
	return &sum, rows.Err()
}
