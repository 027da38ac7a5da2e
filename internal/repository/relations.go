package repository

import (
	"context"
	"fmt"

	"mini_crm/internal/models"

	"github.com/jmoiron/sqlx"
)

const (
	selectClientRefsSQL  = `SELECT id, name FROM clients WHERE user_id = ? AND id IN (?)`
	selectProjectRefsSQL = `SELECT id, title FROM projects WHERE user_id = ? AND id IN (?)`
)

// clientRefs loads name summaries for the given client ids owned by userID.
// Ids owned by someone else are silently skipped.
func clientRefs(ctx context.Context, db *sqlx.DB, userID string, ids []string) (map[string]*models.ClientRef, error) {
	out := make(map[string]*models.ClientRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(selectClientRefsSQL, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("build client refs query: %w", err)
	}
	var refs []models.ClientRef
	if err := db.SelectContext(ctx, &refs, db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("select client refs: %w", err)
	}
	for i := range refs {
		out[refs[i].ID] = &refs[i]
	}
	return out, nil
}

func projectRefs(ctx context.Context, db *sqlx.DB, userID string, ids []string) (map[string]*models.ProjectRef, error) {
	out := make(map[string]*models.ProjectRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(selectProjectRefsSQL, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("build project refs query: %w", err)
	}
	var refs []models.ProjectRef
	if err := db.SelectContext(ctx, &refs, db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("select project refs: %w", err)
	}
	for i := range refs {
		out[refs[i].ID] = &refs[i]
	}
	return out, nil
}

func lookupClient(refs map[string]*models.ClientRef, id *string) *models.ClientRef {
	if id == nil {
		return nil
	}
	return refs[*id]
}

func lookupProject(refs map[string]*models.ProjectRef, id *string) *models.ProjectRef {
	if id == nil {
		return nil
	}
	return refs[*id]
}
