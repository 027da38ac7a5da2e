package service

import (
	"context"
	"time"

	"mini_crm/internal/auth"
	"mini_crm/internal/models"
	"mini_crm/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, email, password string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	ParseToken(accessToken string) (auth.Identity, error)
	Me(ctx context.Context, userID string) (models.PublicUser, error)
}

// Clients is ownership-scoped CRUD over the user's customers.
type Clients interface {
	List(ctx context.Context, userID string) ([]models.Client, error)
	Get(ctx context.Context, userID, id string) (models.Client, error)
	Create(ctx context.Context, userID string, in ClientInput) (models.Client, error)
	Update(ctx context.Context, userID, id string, p models.ClientPatch) (models.Client, error)
	Delete(ctx context.Context, userID, id string) error
}

type Projects interface {
	List(ctx context.Context, userID string) ([]models.Project, error)
	Get(ctx context.Context, userID, id string) (models.Project, error)
	Create(ctx context.Context, userID string, in ProjectInput) (models.Project, error)
	Update(ctx context.Context, userID, id string, p models.ProjectPatch) (models.Project, error)
	Delete(ctx context.Context, userID, id string) error
}

type Interactions interface {
	List(ctx context.Context, userID string) ([]models.Interaction, error)
	Get(ctx context.Context, userID, id string) (models.Interaction, error)
	Create(ctx context.Context, userID string, in InteractionInput) (models.Interaction, error)
	Update(ctx context.Context, userID, id string, p models.InteractionPatch) (models.Interaction, error)
	Delete(ctx context.Context, userID, id string) error
}

type Reminders interface {
	List(ctx context.Context, userID string) ([]models.Reminder, error)
	Upcoming(ctx context.Context, userID string) ([]models.Reminder, error)
	Get(ctx context.Context, userID, id string) (models.Reminder, error)
	Create(ctx context.Context, userID string, in ReminderInput) (models.Reminder, error)
	Update(ctx context.Context, userID, id string, p models.ReminderPatch) (models.Reminder, error)
	Delete(ctx context.Context, userID, id string) error
}

// Dashboard composes read-only aggregates for one user.
type Dashboard interface {
	Get(ctx context.Context, userID string) (models.Dashboard, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Clients      Clients
	Projects     Projects
	Interactions Interactions
	Reminders    Reminders
	Dashboard    Dashboard
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, codec *auth.Codec) *Service {
	refs := refChecker{clients: repos.Clients, projects: repos.Projects}
	return &Service{
		Authorization: NewAuthService(repos.Auth, codec),
		Clients:       NewClientService(repos.Clients),
		Projects:      NewProjectService(repos.Projects, refs),
		Interactions:  NewInteractionService(repos.Interactions, refs),
		Reminders:     NewReminderService(repos.Reminders, refs),
		Dashboard:     NewDashboardService(repos.Clients, repos.Projects, repos.Reminders),
	}
}

type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
