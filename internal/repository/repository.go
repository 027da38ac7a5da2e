package repository

import (
	"context"
	"time"

	"mini_crm/internal/models"

	"github.com/jmoiron/sqlx"
)

type Authorization interface {
	Create(ctx context.Context, u models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Every owned-entity repository matches rows on both id and user_id;
// a miss on either surfaces as ErrNotFound.

type ClientRepo interface {
	List(ctx context.Context, userID string) ([]models.Client, error)
	Get(ctx context.Context, userID, id string) (models.Client, error)
	Create(ctx context.Context, c models.Client) error
	Update(ctx context.Context, userID, id string, p models.ClientPatch, at time.Time) error
	Delete(ctx context.Context, userID, id string) error
	Exists(ctx context.Context, userID, id string) (bool, error)
	Count(ctx context.Context, userID string) (int, error)
}

type ProjectRepo interface {
	List(ctx context.Context, userID string) ([]models.Project, error)
	Get(ctx context.Context, userID, id string) (models.Project, error)
	Create(ctx context.Context, p models.Project) error
	Update(ctx context.Context, userID, id string, p models.ProjectPatch, at time.Time) error
	Delete(ctx context.Context, userID, id string) error
	Exists(ctx context.Context, userID, id string) (bool, error)
	Count(ctx context.Context, userID string) (int, error)
	CountByStatus(ctx context.Context, userID string) ([]models.StatusCount, error)
}

type InteractionRepo interface {
	List(ctx context.Context, userID string) ([]models.Interaction, error)
	Get(ctx context.Context, userID, id string) (models.Interaction, error)
	Create(ctx context.Context, it models.Interaction) error
	Update(ctx context.Context, userID, id string, p models.InteractionPatch, at time.Time) error
	Delete(ctx context.Context, userID, id string) error
}

type ReminderRepo interface {
	List(ctx context.Context, userID string) ([]models.Reminder, error)
	Get(ctx context.Context, userID, id string) (models.Reminder, error)
	Create(ctx context.Context, rm models.Reminder) error
	Update(ctx context.Context, userID, id string, p models.ReminderPatch, at time.Time) error
	Delete(ctx context.Context, userID, id string) error
	DueBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Reminder, error)
	DueWindow(ctx context.Context, after, upTo time.Time) ([]models.Reminder, error)
}

type Repository struct {
	Auth         Authorization
	Clients      ClientRepo
	Projects     ProjectRepo
	Interactions InteractionRepo
	Reminders    ReminderRepo
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Auth:         NewUserRepository(db),
		Clients:      NewClientSQL(db),
		Projects:     NewProjectSQL(db),
		Interactions: NewInteractionSQL(db),
		Reminders:    NewReminderSQL(db),
	}
}
