package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mini_crm/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProjectSQL struct {
	db *sqlx.DB
}

func NewProjectSQL(db *sqlx.DB) *ProjectSQL { return &ProjectSQL{db: db} }

var _ ProjectRepo = (*ProjectSQL)(nil)

const (
	projectsTable = "projects"

	projectColumns = `id, title, budget, deadline, status, client_id, user_id, created_at, updated_at`

	insertProjectSQL = `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectProjectsSQL = `SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? ORDER BY deadline DESC`

	selectProjectSQL = `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND user_id = ?`

	countProjectsByStatusSQL = `SELECT status, COUNT(1) AS count FROM projects WHERE user_id = ? GROUP BY status ORDER BY status`
)

// List returns the user's projects, latest deadline first, with client summaries.
func (r *ProjectSQL) List(ctx context.Context, userID string) ([]models.Project, error) {
	out := make([]models.Project, 0, 16)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(selectProjectsSQL), userID); err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	if err := r.attach(ctx, userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectSQL) Get(ctx context.Context, userID, id string) (models.Project, error) {
	var p models.Project
	if err := r.db.GetContext(ctx, &p, r.db.Rebind(selectProjectSQL), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, fmt.Errorf("select project %q: %w", id, err)
	}
	one := []models.Project{p}
	if err := r.attach(ctx, userID, one); err != nil {
		return models.Project{}, err
	}
	return one[0], nil
}

func (r *ProjectSQL) Create(ctx context.Context, p models.Project) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertProjectSQL),
		p.ID,
		p.Title,
		p.Budget,
		p.Deadline.UTC(),
		string(p.Status),
		p.ClientID,
		p.UserID,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert project %q: %w", p.Title, err)
	}
	return nil
}

func (r *ProjectSQL) Update(ctx context.Context, userID, id string, p models.ProjectPatch, at time.Time) error {
	var s setClause
	if p.Title != nil {
		s.add("title", *p.Title)
	}
	if p.Budget != nil {
		s.add("budget", *p.Budget)
	}
	if d := utcPtr(p.Deadline); d != nil {
		s.add("deadline", *d)
	}
	if p.Status != nil {
		s.add("status", string(*p.Status))
	}
	s.addRef("client_id", p.ClientID)
	return updateOwned(ctx, r.db, projectsTable, userID, id, s, at)
}

func (r *ProjectSQL) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.db, projectsTable, userID, id)
}

func (r *ProjectSQL) Exists(ctx context.Context, userID, id string) (bool, error) {
	return existsOwned(ctx, r.db, projectsTable, userID, id)
}

func (r *ProjectSQL) Count(ctx context.Context, userID string) (int, error) {
	return countOwned(ctx, r.db, projectsTable, userID)
}

// CountByStatus groups the user's projects by status.
func (r *ProjectSQL) CountByStatus(ctx context.Context, userID string) ([]models.StatusCount, error) {
	out := make([]models.StatusCount, 0, 3)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(countProjectsByStatusSQL), userID); err != nil {
		return nil, fmt.Errorf("count projects by status: %w", err)
	}
	return out, nil
}

func (r *ProjectSQL) attach(ctx context.Context, userID string, ps []models.Project) error {
	ids := make([]*string, 0, len(ps))
	for i := range ps {
		ids = append(ids, ps[i].ClientID)
	}
	clients, err := clientRefs(ctx, r.db, userID, refIDs(ids...))
	if err != nil {
		return err
	}
	for i := range ps {
		ps[i].Deadline = ps[i].Deadline.UTC()
		ps[i].CreatedAt = ps[i].CreatedAt.UTC()
		ps[i].UpdatedAt = ps[i].UpdatedAt.UTC()
		ps[i].Client = lookupClient(clients, ps[i].ClientID)
	}
	return nil
}
