package service

import (
	"context"

	"mini_crm/internal/models"
	"mini_crm/internal/repository"

	"github.com/google/uuid"
)

type ClientService struct {
	repo repository.ClientRepo
	now  clock
}

func NewClientService(repo repository.ClientRepo) *ClientService {
	return &ClientService{repo: repo, now: utcNow}
}

func (s *ClientService) List(ctx context.Context, userID string) ([]models.Client, error) {
	return s.repo.List(ctx, userID)
}

func (s *ClientService) Get(ctx context.Context, userID, id string) (models.Client, error) {
	return s.repo.Get(ctx, userID, id)
}

// Create stores a client owned by userID, whatever the input says.
func (s *ClientService) Create(ctx context.Context, userID string, in ClientInput) (models.Client, error) {
	if err := check(in); err != nil {
		return models.Client{}, err
	}
	now := s.now()
	c := models.Client{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Notes:     in.Notes,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return models.Client{}, err
	}
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, userID, id string, p models.ClientPatch) (models.Client, error) {
	if err := check(p); err != nil {
		return models.Client{}, err
	}
	if err := s.repo.Update(ctx, userID, id, p, s.now()); err != nil {
		return models.Client{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *ClientService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
