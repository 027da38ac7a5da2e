package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// setClause accumulates the column assignments of a partial update.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

// addRef sets a nullable reference column; an empty id clears it.
func (s *setClause) addRef(col string, id *string) {
	if id == nil {
		return
	}
	if *id == "" {
		s.add(col, nil)
		return
	}
	s.add(col, *id)
}

// updateOwned applies s to the row matching both id and userID.
// updated_at is always bumped, so an empty patch still checks ownership.
func updateOwned(ctx context.Context, db *sqlx.DB, table, userID, id string, s setClause, at time.Time) error {
	s.add("updated_at", at.UTC())

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? AND user_id = ?", table, strings.Join(s.cols, ", "))
	args := append(s.args, id, userID)

	res, err := db.ExecContext(ctx, db.Rebind(q), args...)
	if err != nil {
		return fmt.Errorf("update %s %q: %w", table, id, err)
	}
	return expectAffected(res.RowsAffected, table, id)
}

// deleteOwned removes the row matching both id and userID.
func deleteOwned(ctx context.Context, db *sqlx.DB, table, userID, id string) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND user_id = ?", table)
	res, err := db.ExecContext(ctx, db.Rebind(q), id, userID)
	if err != nil {
		return fmt.Errorf("delete %s %q: %w", table, id, err)
	}
	return expectAffected(res.RowsAffected, table, id)
}

func expectAffected(rowsAffected func() (int64, error), table, id string) error {
	n, err := rowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s %q: %w", table, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// existsOwned reports whether a row with id is owned by userID.
func existsOwned(ctx context.Context, db *sqlx.DB, table, userID, id string) (bool, error) {
	q := fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE id = ? AND user_id = ?", table)
	var n int
	if err := db.GetContext(ctx, &n, db.Rebind(q), id, userID); err != nil {
		return false, fmt.Errorf("check %s %q: %w", table, id, err)
	}
	return n > 0, nil
}

func countOwned(ctx context.Context, db *sqlx.DB, table, userID string) (int, error) {
	q := fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE user_id = ?", table)
	var n int
	if err := db.GetContext(ctx, &n, db.Rebind(q), userID); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// refIDs collects the distinct non-nil ids.
func refIDs(ids ...*string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == nil || *id == "" {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
