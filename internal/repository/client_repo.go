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

type ClientSQL struct {
	db *sqlx.DB
}

func NewClientSQL(db *sqlx.DB) *ClientSQL { return &ClientSQL{db: db} }

var _ ClientRepo = (*ClientSQL)(nil)

const (
	clientsTable = "clients"

	clientColumns = `id, name, email, phone, company, notes, user_id, created_at, updated_at`

	insertClientSQL = `INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectClientsSQL = `SELECT ` + clientColumns + ` FROM clients WHERE user_id = ? ORDER BY created_at ASC`

	selectClientSQL = `SELECT ` + clientColumns + ` FROM clients WHERE id = ? AND user_id = ?`
)

// List returns every client owned by userID, oldest first.
func (r *ClientSQL) List(ctx context.Context, userID string) ([]models.Client, error) {
	out := make([]models.Client, 0, 16)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(selectClientsSQL), userID); err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}
	for i := range out {
		normalizeClient(&out[i])
	}
	return out, nil
}

// Get returns the client only when it is owned by userID.
func (r *ClientSQL) Get(ctx context.Context, userID, id string) (models.Client, error) {
	var c models.Client
	if err := r.db.GetContext(ctx, &c, r.db.Rebind(selectClientSQL), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Client{}, ErrNotFound
		}
		return models.Client{}, fmt.Errorf("select client %q: %w", id, err)
	}
	normalizeClient(&c)
	return c, nil
}

func (r *ClientSQL) Create(ctx context.Context, c models.Client) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertClientSQL),
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Company,
		c.Notes,
		c.UserID,
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert client %q: %w", c.Name, err)
	}
	return nil
}

func (r *ClientSQL) Update(ctx context.Context, userID, id string, p models.ClientPatch, at time.Time) error {
	var s setClause
	if p.Name != nil {
		s.add("name", *p.Name)
	}
	if p.Email != nil {
		s.add("email", *p.Email)
	}
	if p.Phone != nil {
		s.add("phone", *p.Phone)
	}
	if p.Company != nil {
		s.add("company", *p.Company)
	}
	if p.Notes != nil {
		s.add("notes", *p.Notes)
	}
	return updateOwned(ctx, r.db, clientsTable, userID, id, s, at)
}

func (r *ClientSQL) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.db, clientsTable, userID, id)
}

func (r *ClientSQL) Exists(ctx context.Context, userID, id string) (bool, error) {
	return existsOwned(ctx, r.db, clientsTable, userID, id)
}

func (r *ClientSQL) Count(ctx context.Context, userID string) (int, error) {
	return countOwned(ctx, r.db, clientsTable, userID)
}

func normalizeClient(c *models.Client) {
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
}
