package service

import (
	"context"

	"mini_crm/internal/models"
	"mini_crm/internal/repository"

	"github.com/google/uuid"
)

type ReminderService struct {
	repo repository.ReminderRepo
	refs refChecker
	now  clock
}

func NewReminderService(repo repository.ReminderRepo, refs refChecker) *ReminderService {
	return &ReminderService{repo: repo, refs: refs, now: utcNow}
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	return s.repo.List(ctx, userID)
}

// Upcoming returns reminders due between now and a week from now, inclusive.
func (s *ReminderService) Upcoming(ctx context.Context, userID string) ([]models.Reminder, error) {
	now := s.now()
	return s.repo.DueBetween(ctx, userID, now, now.Add(UpcomingWindow))
}

func (s *ReminderService) Get(ctx context.Context, userID, id string) (models.Reminder, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *ReminderService) Create(ctx context.Context, userID string, in ReminderInput) (models.Reminder, error) {
	if err := check(in); err != nil {
		return models.Reminder{}, err
	}
	in.ClientID = optionalRef(in.ClientID)
	in.ProjectID = optionalRef(in.ProjectID)
	if err := s.refs.check(ctx, userID, in.ClientID, in.ProjectID); err != nil {
		return models.Reminder{}, err
	}

	now := s.now()
	rm := models.Reminder{
		ID:        uuid.NewString(),
		DueDate:   in.DueDate.UTC(),
		Notes:     in.Notes,
		ClientID:  in.ClientID,
		ProjectID: in.ProjectID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rm); err != nil {
		return models.Reminder{}, err
	}
	return s.repo.Get(ctx, userID, rm.ID)
}

func (s *ReminderService) Update(ctx context.Context, userID, id string, p models.ReminderPatch) (models.Reminder, error) {
	if err := s.refs.check(ctx, userID, p.ClientID, p.ProjectID); err != nil {
		return models.Reminder{}, err
	}
	if err := s.repo.Update(ctx, userID, id, p, s.now()); err != nil {
		return models.Reminder{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *ReminderService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
