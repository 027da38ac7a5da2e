package models

import "time"

type Reminder struct {
	ID        string    `json:"id" db:"id"`
	DueDate   time.Time `json:"dueDate" db:"due_date"`
	Notes     string    `json:"notes" db:"notes"`
	ClientID  *string   `json:"clientId" db:"client_id"`
	ProjectID *string   `json:"projectId" db:"project_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Client  *ClientRef  `json:"client,omitempty" db:"-"`
	Project *ProjectRef `json:"project,omitempty" db:"-"`
}

type ReminderPatch struct {
	DueDate   *time.Time
	Notes     *string
	ClientID  *string
	ProjectID *string
}
