package models

// User represents an application user record. Salt and HashedPassword never
// leave the server.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Salt           []byte `json:"-"`
	HashedPassword []byte `json:"-"`
}

// Author is the public subset of a user attached to owned resources.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u User) Author() Author {
	return Author{ID: u.ID, Username: u.Username}
}
