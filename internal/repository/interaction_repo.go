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

type InteractionSQL struct {
	db *sqlx.DB
}

func NewInteractionSQL(db *sqlx.DB) *InteractionSQL { return &InteractionSQL{db: db} }

var _ InteractionRepo = (*InteractionSQL)(nil)

const (
	interactionsTable = "interactions"

	interactionColumns = `id, date, type, notes, client_id, project_id, user_id, created_at, updated_at`

	insertInteractionSQL = `INSERT INTO interactions (` + interactionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectInteractionsSQL = `SELECT ` + interactionColumns + ` FROM interactions WHERE user_id = ? ORDER BY date DESC`

	selectInteractionSQL = `SELECT ` + interactionColumns + ` FROM interactions WHERE id = ? AND user_id = ?`
)

// List returns the user's interaction log, newest first.
func (r *InteractionSQL) List(ctx context.Context, userID string) ([]models.Interaction, error) {
	out := make([]models.Interaction, 0, 32)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(selectInteractionsSQL), userID); err != nil {
		return nil, fmt.Errorf("select interactions: %w", err)
	}
	if err := r.attach(ctx, userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InteractionSQL) Get(ctx context.Context, userID, id string) (models.Interaction, error) {
	var it models.Interaction
	if err := r.db.GetContext(ctx, &it, r.db.Rebind(selectInteractionSQL), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Interaction{}, ErrNotFound
		}
		return models.Interaction{}, fmt.Errorf("select interaction %q: %w", id, err)
	}
	one := []models.Interaction{it}
	if err := r.attach(ctx, userID, one); err != nil {
		return models.Interaction{}, err
	}
	return one[0], nil
}

func (r *InteractionSQL) Create(ctx context.Context, it models.Interaction) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertInteractionSQL),
		it.ID,
		it.Date.UTC(),
		it.Type,
		it.Notes,
		it.ClientID,
		it.ProjectID,
		it.UserID,
		it.CreatedAt.UTC(),
		it.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

func (r *InteractionSQL) Update(ctx context.Context, userID, id string, p models.InteractionPatch, at time.Time) error {
	var s setClause
	if d := utcPtr(p.Date); d != nil {
		s.add("date", *d)
	}
	if p.Type != nil {
		s.add("type", *p.Type)
	}
	if p.Notes != nil {
		s.add("notes", *p.Notes)
	}
	s.addRef("client_id", p.ClientID)
	s.addRef("project_id", p.ProjectID)
	return updateOwned(ctx, r.db, interactionsTable, userID, id, s, at)
}

func (r *InteractionSQL) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.db, interactionsTable, userID, id)
}

func (r *InteractionSQL) attach(ctx context.Context, userID string, items []models.Interaction) error {
	var clientIDs, projectIDs []*string
	for i := range items {
		clientIDs = append(clientIDs, items[i].ClientID)
		projectIDs = append(projectIDs, items[i].ProjectID)
	}
	clients, err := clientRefs(ctx, r.db, userID, refIDs(clientIDs...))
	if err != nil {
		return err
	}
	projects, err := projectRefs(ctx, r.db, userID, refIDs(projectIDs...))
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Date = items[i].Date.UTC()
		items[i].CreatedAt = items[i].CreatedAt.UTC()
		items[i].UpdatedAt = items[i].UpdatedAt.UTC()
		items[i].Client = lookupClient(clients, items[i].ClientID)
		items[i].Project = lookupProject(projects, items[i].ProjectID)
	}
	return nil
}
