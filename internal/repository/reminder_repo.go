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

type ReminderSQL struct {
	db *sqlx.DB
}

func NewReminderSQL(db *sqlx.DB) *ReminderSQL { return &ReminderSQL{db: db} }

var _ ReminderRepo = (*ReminderSQL)(nil)

const (
	remindersTable = "reminders"

	reminderColumns = `id, due_date, notes, client_id, project_id, user_id, created_at, updated_at`

	insertReminderSQL = `INSERT INTO reminders (` + reminderColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectRemindersSQL = `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = ? ORDER BY due_date ASC`

	selectReminderSQL = `SELECT ` + reminderColumns + ` FROM reminders WHERE id = ? AND user_id = ?`

	// [from, to] inclusive on both ends
	selectRemindersDueSQL = `SELECT ` + reminderColumns + ` FROM reminders
		WHERE user_id = ? AND due_date >= ? AND due_date <= ?
		ORDER BY due_date ASC`

	// (after, upTo] across all users, for the notifier
	selectRemindersWindowSQL = `SELECT ` + reminderColumns + ` FROM reminders
		WHERE due_date > ? AND due_date <= ?
		ORDER BY due_date ASC`
)

func (r *ReminderSQL) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	out := make([]models.Reminder, 0, 16)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(selectRemindersSQL), userID); err != nil {
		return nil, fmt.Errorf("select reminders: %w", err)
	}
	if err := r.attach(ctx, userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReminderSQL) Get(ctx context.Context, userID, id string) (models.Reminder, error) {
	var rm models.Reminder
	if err := r.db.GetContext(ctx, &rm, r.db.Rebind(selectReminderSQL), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reminder{}, ErrNotFound
		}
		return models.Reminder{}, fmt.Errorf("select reminder %q: %w", id, err)
	}
	one := []models.Reminder{rm}
	if err := r.attach(ctx, userID, one); err != nil {
		return models.Reminder{}, err
	}
	return one[0], nil
}

// DueBetween returns the user's reminders due within [from, to], soonest first.
func (r *ReminderSQL) DueBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Reminder, error) {
	out := make([]models.Reminder, 0, 8)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(selectRemindersDueSQL), userID, from.UTC(), to.UTC()); err != nil {
		return nil, fmt.Errorf("select due reminders: %w", err)
	}
	if err := r.attach(ctx, userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DueWindow returns reminders of every user due within (after, upTo].
// Related summaries are not attached.
func (r *ReminderSQL) DueWindow(ctx context.Context, after, upTo time.Time) ([]models.Reminder, error) {
	out := make([]models.Reminder, 0, 8)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(selectRemindersWindowSQL), after.UTC(), upTo.UTC()); err != nil {
		return nil, fmt.Errorf("select reminders window: %w", err)
	}
	for i := range out {
		normalizeReminder(&out[i])
	}
	return out, nil
}

func (r *ReminderSQL) Create(ctx context.Context, rm models.Reminder) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertReminderSQL),
		rm.ID,
		rm.DueDate.UTC(),
		rm.Notes,
		rm.ClientID,
		rm.ProjectID,
		rm.UserID,
		rm.CreatedAt.UTC(),
		rm.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (r *ReminderSQL) Update(ctx context.Context, userID, id string, p models.ReminderPatch, at time.Time) error {
	var s setClause
	if d := utcPtr(p.DueDate); d != nil {
		s.add("due_date", *d)
	}
	if p.Notes != nil {
		s.add("notes", *p.Notes)
	}
	s.addRef("client_id", p.ClientID)
	s.addRef("project_id", p.ProjectID)
	return updateOwned(ctx, r.db, remindersTable, userID, id, s, at)
}

func (r *ReminderSQL) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.db, remindersTable, userID, id)
}

func (r *ReminderSQL) attach(ctx context.Context, userID string, items []models.Reminder) error {
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
		normalizeReminder(&items[i])
		items[i].Client = lookupClient(clients, items[i].ClientID)
		items[i].Project = lookupProject(projects, items[i].ProjectID)
	}
	return nil
}

func normalizeReminder(rm *models.Reminder) {
	rm.DueDate = rm.DueDate.UTC()
	rm.CreatedAt = rm.CreatedAt.UTC()
	rm.UpdatedAt = rm.UpdatedAt.UTC()
}
