package models

import "time"

// User represents a row in the users table.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialize
	CreatedAt    time.Time `json:"created_at"`
}

// SessionUser is the identity resolved from a live session cookie.
type SessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SessionRow is one entry of the administrative session listing:
// a session joined with its owning user, expired rows included.
type SessionRow struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CredentialsRequest is the JSON body for POST /login and POST /register.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
