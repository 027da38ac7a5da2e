package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mini_crm/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, password_hash, created_at FROM users WHERE id = ?`
)

// Create inserts a new user. A taken email yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertUserSQL), u.ID, u.Email, u.PasswordHash, u.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) getOne(ctx context.Context, query, arg string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", arg, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
