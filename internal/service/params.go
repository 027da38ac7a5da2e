package service

import (
	"time"

	"mini_crm/internal/models"
)

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"notblank,min=6"`
}

type AuthResult struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

type ClientInput struct {
	Name    string `validate:"notblank"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"notblank"`
	Company *string
	Notes   *string
}

type ProjectInput struct {
	Title    string               `validate:"notblank"`
	Budget   float64              `validate:"gte=0"`
	Deadline time.Time            `validate:"required"`
	Status   models.ProjectStatus `validate:"omitempty,oneof=pending in_progress completed"` // empty means pending
	ClientID *string
}

type InteractionInput struct {
	Date      time.Time `validate:"required"`
	Type      string    `validate:"notblank"`
	Notes     string
	ClientID  *string
	ProjectID *string
}

type ReminderInput struct {
	DueDate   time.Time `validate:"required"`
	Notes     string
	ClientID  *string
	ProjectID *string
}

// UpcomingWindow is how far ahead Upcoming and the dashboard look.
const UpcomingWindow = 7 * 24 * time.Hour
