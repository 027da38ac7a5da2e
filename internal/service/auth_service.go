package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mini_crm/internal/auth"
	"mini_crm/internal/models"
	"mini_crm/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
	codec    *auth.Codec
	now      clock
}

func NewAuthService(repo repository.Authorization, codec *auth.Codec) *AuthService {
	return &AuthService{authRepo: repo, codec: codec, now: utcNow}
}

// SignUp hashes the password, creates the user and issues a token.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return AuthResult{}, err
	}

	existing, err := s.authRepo.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if existing != nil {
		return AuthResult{}, ErrEmailTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.authRepo.Create(ctx, u); err != nil {
		// lost a race with a concurrent sign-up
		if errors.Is(err, repository.ErrDuplicate) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}

	return s.issue(u)
}

// Login validates credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.authRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return AuthResult{}, err
	}
	if u == nil {
		return AuthResult{}, ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(*u)
}

// ParseToken verifies the token and returns the identity it carries.
func (s *AuthService) ParseToken(accessToken string) (auth.Identity, error) {
	return s.codec.Verify(accessToken)
}

// Me returns the public profile of an authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (models.PublicUser, error) {
	u, err := s.authRepo.GetByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}
	if u == nil {
		return models.PublicUser{}, ErrUserNotFound
	}
	return u.Public(), nil
}

func (s *AuthService) issue(u models.User) (AuthResult, error) {
	token, err := s.codec.Issue(auth.Identity{ID: u.ID, Email: u.Email})
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u.Public(), Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	return check(credentials{Email: email, Password: password})
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
