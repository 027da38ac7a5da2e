package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mini_crm/internal/auth"
	"mini_crm/internal/models"
	"mini_crm/internal/repository"
)

const testSecret = "test-secret"

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn     func(u models.User) error
	GetByEmailFn func(email string) (*models.User, error)
	GetByIDFn    func(id string) (*models.User, error)

	created  []models.User
	getCalls []string
}

func (m *mockAuthRepo) Create(_ context.Context, u models.User) error {
	m.created = append(m.created, u)
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(u)
}

func (m *mockAuthRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.getCalls = append(m.getCalls, email)
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(email)
}

func (m *mockAuthRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func newTestAuthService(t *testing.T, repo *mockAuthRepo) *AuthService {
	t.Helper()
	codec, err := auth.NewCodec(testSecret, 0)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return NewAuthService(repo, codec)
}

// --- SignUp tests ---

func TestAuthService_SignUp_SuccessHashesPasswordAndIssuesToken(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := newTestAuthService(t, repo)

	res, err := svc.SignUp(context.Background(), "  Alice@Example.com ", "s3cr3t!")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected non-empty token")
	}
	if res.User.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", res.User.Email)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(repo.created))
	}
	u := repo.created[0]
	if u.ID == "" || u.ID != res.User.ID {
		t.Errorf("expected generated id %q to match response %q", u.ID, res.User.ID)
	}
	if u.PasswordHash == "s3cr3t!" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(u.PasswordHash, "s3cr3t!"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	id, err := svc.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if id.ID != u.ID || id.Email != u.Email {
		t.Fatalf("token identity mismatch: %+v", id)
	}
}

func TestAuthService_SignUp_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret1"},
		{"malformed email", "not-an-email", "secret1"},
		{"empty password", "bob@example.com", "   "},
		{"short password", "bob@example.com", "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockAuthRepo{}
			svc := newTestAuthService(t, repo)

			_, err := svc.SignUp(context.Background(), tc.email, tc.password)
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.created) != 0 {
				t.Fatalf("expected no Create calls, got %d", len(repo.created))
			}
		})
	}
}

func TestAuthService_SignUp_EmailTaken(t *testing.T) {
	repo := &mockAuthRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: "u1", Email: email}, nil
		},
	}
	svc := newTestAuthService(t, repo)

	_, err := svc.SignUp(context.Background(), "carl@example.com", "pass123")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(repo.created))
	}
}

func TestAuthService_SignUp_DuplicateOnInsert(t *testing.T) {
	repo := &mockAuthRepo{
		CreateFn: func(models.User) error {
			return repository.ErrDuplicate
		},
	}
	svc := newTestAuthService(t, repo)

	_, err := svc.SignUp(context.Background(), "carl@example.com", "pass123")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_SignUp_RepoError(t *testing.T) {
	repo := &mockAuthRepo{
		CreateFn: func(models.User) error {
			return errors.New("db down")
		},
	}
	svc := newTestAuthService(t, repo)

	_, err := svc.SignUp(context.Background(), "carl@example.com", "pass123")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- Login tests ---

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: "u-7", Email: "diana@example.com", PasswordHash: hash}

	repo := &mockAuthRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email != "diana@example.com" {
				t.Fatalf("expected email 'diana@example.com', got %q", email)
			}
			return user, nil
		},
	}
	svc := newTestAuthService(t, repo)

	res, err := svc.Login(context.Background(), "Diana@example.com", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.User.ID != "u-7" {
		t.Fatalf("expected user u-7, got %q", res.User.ID)
	}

	id, err := svc.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if id.ID != "u-7" {
		t.Fatalf("expected user id u-7 from token, got %q", id.ID)
	}
	if len(repo.getCalls) != 1 {
		t.Fatalf("expected 1 GetByEmail call, got %d", len(repo.getCalls))
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(t, &mockAuthRepo{})

	_, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	repo := &mockAuthRepo{
		GetByEmailFn: func(string) (*models.User, error) {
			return &models.User{ID: "u1", Email: "eve@example.com", PasswordHash: correctHash}, nil
		},
	}
	svc := newTestAuthService(t, repo)

	_, err = svc.Login(context.Background(), "eve@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	repo := &mockAuthRepo{
		GetByEmailFn: func(string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := newTestAuthService(t, repo)

	if _, err := svc.Login(context.Background(), "john@example.com", "pw"); err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- ParseToken / Me tests ---

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := newTestAuthService(t, &mockAuthRepo{})
	if _, err := svc.ParseToken("not-a-jwt"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_ParseToken_OtherSecret(t *testing.T) {
	svc := newTestAuthService(t, &mockAuthRepo{})

	other, err := auth.NewCodec("different-key", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	tok, err := other.Issue(auth.Identity{ID: "u5", Email: "x@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.ParseToken(tok); err == nil {
		t.Fatalf("expected signature verification error")
	}
}

func TestAuthService_Me(t *testing.T) {
	repo := &mockAuthRepo{
		GetByIDFn: func(id string) (*models.User, error) {
			if id != "u1" {
				return nil, nil
			}
			return &models.User{ID: "u1", Email: "me@example.com", PasswordHash: "x"}, nil
		},
	}
	svc := newTestAuthService(t, repo)

	me, err := svc.Me(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Email != "me@example.com" {
		t.Fatalf("unexpected profile %+v", me)
	}

	if _, err := svc.Me(context.Background(), "gone"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
