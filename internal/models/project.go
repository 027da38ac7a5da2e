package models

import "time"

type ProjectStatus string

const (
	StatusPending    ProjectStatus = "pending"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID        string        `json:"id" db:"id"`
	Title     string        `json:"title" db:"title"`
	Budget    float64       `json:"budget" db:"budget"`
	Deadline  time.Time     `json:"deadline" db:"deadline"`
	Status    ProjectStatus `json:"status" db:"status"`
	ClientID  *string       `json:"clientId" db:"client_id"`
	UserID    string        `json:"userId" db:"user_id"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`

	Client *ClientRef `json:"client,omitempty" db:"-"`
}

// ProjectPatch carries the fields of a partial update. An empty ClientID
// clears the reference.
type ProjectPatch struct {
	Title    *string        `validate:"omitempty,notblank"`
	Budget   *float64       `validate:"omitempty,gte=0"`
	Deadline *time.Time
	Status   *ProjectStatus `validate:"omitempty,oneof=pending in_progress completed"`
	ClientID *string
}

type ProjectRef struct {
	ID    string `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}
