package models

import "time"

// Client is a customer record owned by a single user.
type Client struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Company   *string   `json:"company" db:"company"`
	Notes     *string   `json:"notes" db:"notes"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ClientPatch carries the fields of a partial update; nil means unchanged.
type ClientPatch struct {
	Name    *string `validate:"omitempty,notblank"`
	Email   *string `validate:"omitempty,email"`
	Phone   *string `validate:"omitempty,notblank"`
	Company *string
	Notes   *string
}

// ClientRef is the summary embedded in related entities.
type ClientRef struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
