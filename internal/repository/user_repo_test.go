package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"mini_crm/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	db := sqlx.NewDb(raw, "sqlmock")
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return db, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	u := models.User{ID: "u1", Email: "alice@example.com", PasswordHash: "h123", CreatedAt: created}

	tests := []struct {
		name           string
		mockExpect     func(sqlmock.Sqlmock)
		wantErr        error
		errContainsStr string
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("u1", "alice@example.com", "h123", created).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("u1", "alice@example.com", "h123", created).
					WillReturnError(errors.New("db exec failed"))
			},
			errContainsStr: "insert user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()

			tt.mockExpect(mock)

			err := NewUserRepository(db).Create(context.Background(), u)
			if tt.errContainsStr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContainsStr) {
				t.Fatalf("expected error containing %q, got %v", tt.errContainsStr, err)
			}
			if errors.Is(err, ErrDuplicate) {
				t.Fatalf("plain exec failure must not look like a duplicate")
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	cols := []string{"id", "email", "password_hash", "created_at"}

	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantUser   *models.User
		wantErr    bool
	}{
		{
			name: "found",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@example.com").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("u1", "alice@example.com", "hash", created))
			},
			wantUser: &models.User{ID: "u1", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: created},
		},
		{
			name: "not found",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@example.com").
					WillReturnRows(sqlmock.NewRows(cols))
			},
		},
		{
			name: "query error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@example.com").
					WillReturnError(errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()

			tt.mockExpect(mock)

			got, err := NewUserRepository(db).GetByEmail(context.Background(), "alice@example.com")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if got != nil {
					t.Fatalf("expected nil user, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tt.wantUser {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, got)
			}
		})
	}
}
