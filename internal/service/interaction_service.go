package service

import (
	"context"

	"mini_crm/internal/models"
	"mini_crm/internal/repository"

	"github.com/google/uuid"
)

type InteractionService struct {
	repo repository.InteractionRepo
	refs refChecker
	now  clock
}

func NewInteractionService(repo repository.InteractionRepo, refs refChecker) *InteractionService {
	return &InteractionService{repo: repo, refs: refs, now: utcNow}
}

func (s *InteractionService) List(ctx context.Context, userID string) ([]models.Interaction, error) {
	return s.repo.List(ctx, userID)
}

func (s *InteractionService) Get(ctx context.Context, userID, id string) (models.Interaction, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *InteractionService) Create(ctx context.Context, userID string, in InteractionInput) (models.Interaction, error) {
	if err := check(in); err != nil {
		return models.Interaction{}, err
	}
	in.ClientID = optionalRef(in.ClientID)
	in.ProjectID = optionalRef(in.ProjectID)
	if err := s.refs.check(ctx, userID, in.ClientID, in.ProjectID); err != nil {
		return models.Interaction{}, err
	}

	now := s.now()
	it := models.Interaction{
		ID:        uuid.NewString(),
		Date:      in.Date.UTC(),
		Type:      in.Type,
		Notes:     in.Notes,
		ClientID:  in.ClientID,
		ProjectID: in.ProjectID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return models.Interaction{}, err
	}
	return s.repo.Get(ctx, userID, it.ID)
}

func (s *InteractionService) Update(ctx context.Context, userID, id string, p models.InteractionPatch) (models.Interaction, error) {
	if err := check(p); err != nil {
		return models.Interaction{}, err
	}
	if err := s.refs.check(ctx, userID, p.ClientID, p.ProjectID); err != nil {
		return models.Interaction{}, err
	}
	if err := s.repo.Update(ctx, userID, id, p, s.now()); err != nil {
		return models.Interaction{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *InteractionService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
