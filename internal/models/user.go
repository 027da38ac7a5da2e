package models

import "time"

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // don’t expose hash
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PublicUser is the shape returned by the auth endpoints.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}
