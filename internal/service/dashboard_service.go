package service

import (
	"context"

	"mini_crm/internal/models"
	"mini_crm/internal/repository"

	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	clients   repository.ClientRepo
	projects  repository.ProjectRepo
	reminders repository.ReminderRepo
	now       clock
}

func NewDashboardService(clients repository.ClientRepo, projects repository.ProjectRepo, reminders repository.ReminderRepo) *DashboardService {
	return &DashboardService{clients: clients, projects: projects, reminders: reminders, now: utcNow}
}

// Get runs the four aggregate queries concurrently. If any of them fails the
// whole dashboard fails; there is no partial result.
func (s *DashboardService) Get(ctx context.Context, userID string) (models.Dashboard, error) {
	var d models.Dashboard
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TotalClients, err = s.clients.Count(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.TotalProjects, err = s.projects.Count(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.UpcomingReminders, err = s.reminders.DueBetween(gctx, userID, now, now.Add(UpcomingWindow))
		return err
	})
	g.Go(func() (err error) {
		d.ProjectsByStatus, err = s.projects.CountByStatus(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}
	return d, nil
}
