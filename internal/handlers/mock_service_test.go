package handlers

import (
	"context"
	"net/http"

	"mini_crm/internal/auth"
	"mini_crm/internal/models"
	"mini_crm/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpRes service.AuthResult
	signUpErr error
	loginRes  service.AuthResult
	loginErr  error
	parseID   auth.Identity
	parseErr  error
	meUser    models.PublicUser
	meErr     error

	lastEmail      string
	lastPassword   string
	lastParseToken string
}

func (m *mockAuth) SignUp(_ context.Context, email, password string) (service.AuthResult, error) {
	m.lastEmail, m.lastPassword = email, password
	return m.signUpRes, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (service.AuthResult, error) {
	m.lastEmail, m.lastPassword = email, password
	return m.loginRes, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (auth.Identity, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) Me(_ context.Context, _ string) (models.PublicUser, error) {
	return m.meUser, m.meErr
}

// mockCRUD records the owner, id and payload of the last call and returns
// the canned values.
type mockCRUD[T, In, Patch any] struct {
	list []T
	one  T
	err  error

	lastUser  string
	lastID    string
	lastIn    In
	lastPatch Patch
	deleted   int
}

func (m *mockCRUD[T, In, Patch]) List(_ context.Context, userID string) ([]T, error) {
	m.lastUser = userID
	return m.list, m.err
}

func (m *mockCRUD[T, In, Patch]) Get(_ context.Context, userID, id string) (T, error) {
	m.lastUser, m.lastID = userID, id
	return m.one, m.err
}

func (m *mockCRUD[T, In, Patch]) Create(_ context.Context, userID string, in In) (T, error) {
	m.lastUser, m.lastIn = userID, in
	return m.one, m.err
}

func (m *mockCRUD[T, In, Patch]) Update(_ context.Context, userID, id string, p Patch) (T, error) {
	m.lastUser, m.lastID, m.lastPatch = userID, id, p
	return m.one, m.err
}

func (m *mockCRUD[T, In, Patch]) Delete(_ context.Context, userID, id string) error {
	m.lastUser, m.lastID = userID, id
	if m.err == nil {
		m.deleted++
	}
	return m.err
}

type (
	mockClients      = mockCRUD[models.Client, service.ClientInput, models.ClientPatch]
	mockProjects     = mockCRUD[models.Project, service.ProjectInput, models.ProjectPatch]
	mockInteractions = mockCRUD[models.Interaction, service.InteractionInput, models.InteractionPatch]
)

type mockReminders struct {
	mockCRUD[models.Reminder, service.ReminderInput, models.ReminderPatch]
	upcoming    []models.Reminder
	upcomingErr error
}

func (m *mockReminders) Upcoming(_ context.Context, userID string) ([]models.Reminder, error) {
	m.lastUser = userID
	return m.upcoming, m.upcomingErr
}

type mockDashboard struct {
	d     models.Dashboard
	err   error
	calls int
}

func (m *mockDashboard) Get(_ context.Context, _ string) (models.Dashboard, error) {
	m.calls++
	return m.d, m.err
}

type pingerFunc func() error

func (f pingerFunc) PingContext(context.Context) error { return f() }

// ---- Shared Test Helpers ----

const testUserID = "user-1"

// newTestServices returns a Service whose token parsing always succeeds
// for testUserID.
func newTestServices() *service.Service {
	return &service.Service{
		Authorization: &mockAuth{parseID: auth.Identity{ID: testUserID, Email: "u@example.com"}},
		Clients:       &mockClients{},
		Projects:      &mockProjects{},
		Interactions:  &mockInteractions{},
		Reminders:     &mockReminders{},
		Dashboard:     &mockDashboard{},
	}
}

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
