package service

import (
	"context"

	"mini_crm/internal/models"
	"mini_crm/internal/repository"

	"github.com/google/uuid"
)

type ProjectService struct {
	repo repository.ProjectRepo
	refs refChecker
	now  clock
}

func NewProjectService(repo repository.ProjectRepo, refs refChecker) *ProjectService {
	return &ProjectService{repo: repo, refs: refs, now: utcNow}
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	return s.repo.List(ctx, userID)
}

// Get answers ErrNotFound both for missing ids and for projects of other
// users, like every other entity.
func (s *ProjectService) Get(ctx context.Context, userID, id string) (models.Project, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *ProjectService) Create(ctx context.Context, userID string, in ProjectInput) (models.Project, error) {
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if err := check(in); err != nil {
		return models.Project{}, err
	}
	in.ClientID = optionalRef(in.ClientID)
	if err := s.refs.check(ctx, userID, in.ClientID, nil); err != nil {
		return models.Project{}, err
	}

	now := s.now()
	p := models.Project{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Budget:    in.Budget,
		Deadline:  in.Deadline.UTC(),
		Status:    in.Status,
		ClientID:  in.ClientID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return models.Project{}, err
	}
	// re-read to attach the client summary
	return s.repo.Get(ctx, userID, p.ID)
}

func (s *ProjectService) Update(ctx context.Context, userID, id string, p models.ProjectPatch) (models.Project, error) {
	if err := check(p); err != nil {
		return models.Project{}, err
	}
	if err := s.refs.check(ctx, userID, p.ClientID, nil); err != nil {
		return models.Project{}, err
	}
	if err := s.repo.Update(ctx, userID, id, p, s.now()); err != nil {
		return models.Project{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
