package models

import "time"

// Interaction is a logged contact (call, meeting, email, note).
type Interaction struct {
	ID        string    `json:"id" db:"id"`
	Date      time.Time `json:"date" db:"date"`
	Type      string    `json:"type" db:"type"`
	Notes     string    `json:"notes" db:"notes"`
	ClientID  *string   `json:"clientId" db:"client_id"`
	ProjectID *string   `json:"projectId" db:"project_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Client  *ClientRef  `json:"client,omitempty" db:"-"`
	Project *ProjectRef `json:"project,omitempty" db:"-"`
}

type InteractionPatch struct {
	Date      *time.Time
	Type      *string `validate:"omitempty,notblank"`
	Notes     *string
	ClientID  *string
	ProjectID *string
}
