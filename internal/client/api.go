package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"mini_crm/internal/models"
)

// SignUp registers an account and stores the returned session.
func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	return c.authenticate(ctx, "/api/auth/signup", email, password)
}

// Login stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, path, body, &s); err != nil {
		return Session{}, err
	}
	if err := c.store.Save(s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Logout forgets the stored session. Tokens are stateless, so the server is
// not contacted.
func (c *Client) Logout() error {
	return c.store.Clear()
}

func (c *Client) Me(ctx context.Context) (models.PublicUser, error) {
	var out struct {
		User models.PublicUser `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out)
	return out.User, err
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

type ClientRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type ClientUpdate struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// References (ClientID, ProjectID) are cleared on update by pointing them at "".

type ProjectRequest struct {
	Title    string               `json:"title"`
	Budget   float64              `json:"budget"`
	Deadline time.Time            `json:"deadline"`
	Status   models.ProjectStatus `json:"status,omitempty"`
	ClientID *string              `json:"clientId,omitempty"`
}

type ProjectUpdate struct {
	Title    *string               `json:"title,omitempty"`
	Budget   *float64              `json:"budget,omitempty"`
	Deadline *time.Time            `json:"deadline,omitempty"`
	Status   *models.ProjectStatus `json:"status,omitempty"`
	ClientID *string               `json:"clientId,omitempty"`
}

type InteractionRequest struct {
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Notes     string    `json:"notes"`
	ClientID  *string   `json:"clientId,omitempty"`
	ProjectID *string   `json:"projectId,omitempty"`
}

type InteractionUpdate struct {
	Date      *time.Time `json:"date,omitempty"`
	Type      *string    `json:"type,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	ClientID  *string    `json:"clientId,omitempty"`
	ProjectID *string    `json:"projectId,omitempty"`
}

type ReminderRequest struct {
	DueDate   time.Time `json:"dueDate"`
	Notes     string    `json:"notes"`
	ClientID  *string   `json:"clientId,omitempty"`
	ProjectID *string   `json:"projectId,omitempty"`
}

type ReminderUpdate struct {
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	ClientID  *string    `json:"clientId,omitempty"`
	ProjectID *string    `json:"projectId,omitempty"`
}

func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

const (
	clientsPath      = "/api/clients"
	projectsPath     = "/api/projects"
	interactionsPath = "/api/interactions"
	remindersPath    = "/api/reminders"
)

func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	err := c.do(ctx, http.MethodGet, clientsPath, nil, &out)
	return out, err
}

func (c *Client) GetClient(ctx context.Context, id string) (models.Client, error) {
	var out models.Client
	err := c.do(ctx, http.MethodGet, itemPath(clientsPath, id), nil, &out)
	return out, err
}

func (c *Client) CreateClient(ctx context.Context, in ClientRequest) (models.Client, error) {
	var out models.Client
	err := c.do(ctx, http.MethodPost, clientsPath, in, &out)
	return out, err
}

func (c *Client) UpdateClient(ctx context.Context, id string, in ClientUpdate) (models.Client, error) {
	var out models.Client
	err := c.do(ctx, http.MethodPut, itemPath(clientsPath, id), in, &out)
	return out, err
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(clientsPath, id), nil, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := c.do(ctx, http.MethodGet, projectsPath, nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	var out models.Project
	err := c.do(ctx, http.MethodGet, itemPath(projectsPath, id), nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, in ProjectRequest) (models.Project, error) {
	var out models.Project
	err := c.do(ctx, http.MethodPost, projectsPath, in, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id string, in ProjectUpdate) (models.Project, error) {
	var out models.Project
	err := c.do(ctx, http.MethodPut, itemPath(projectsPath, id), in, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(projectsPath, id), nil, nil)
}

func (c *Client) ListInteractions(ctx context.Context) ([]models.Interaction, error) {
	var out []models.Interaction
	err := c.do(ctx, http.MethodGet, interactionsPath, nil, &out)
	return out, err
}

func (c *Client) GetInteraction(ctx context.Context, id string) (models.Interaction, error) {
	var out models.Interaction
	err := c.do(ctx, http.MethodGet, itemPath(interactionsPath, id), nil, &out)
	return out, err
}

func (c *Client) CreateInteraction(ctx context.Context, in InteractionRequest) (models.Interaction, error) {
	var out models.Interaction
	err := c.do(ctx, http.MethodPost, interactionsPath, in, &out)
	return out, err
}

func (c *Client) UpdateInteraction(ctx context.Context, id string, in InteractionUpdate) (models.Interaction, error) {
	var out models.Interaction
	err := c.do(ctx, http.MethodPut, itemPath(interactionsPath, id), in, &out)
	return out, err
}

func (c *Client) DeleteInteraction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(interactionsPath, id), nil, nil)
}

func (c *Client) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	var out []models.Reminder
	err := c.do(ctx, http.MethodGet, remindersPath, nil, &out)
	return out, err
}

// UpcomingReminders lists reminders due within the next seven days.
func (c *Client) UpcomingReminders(ctx context.Context) ([]models.Reminder, error) {
	var out []models.Reminder
	err := c.do(ctx, http.MethodGet, remindersPath+"/upcoming", nil, &out)
	return out, err
}

func (c *Client) GetReminder(ctx context.Context, id string) (models.Reminder, error) {
	var out models.Reminder
	err := c.do(ctx, http.MethodGet, itemPath(remindersPath, id), nil, &out)
	return out, err
}

func (c *Client) CreateReminder(ctx context.Context, in ReminderRequest) (models.Reminder, error) {
	var out models.Reminder
	err := c.do(ctx, http.MethodPost, remindersPath, in, &out)
	return out, err
}

func (c *Client) UpdateReminder(ctx context.Context, id string, in ReminderUpdate) (models.Reminder, error) {
	var out models.Reminder
	err := c.do(ctx, http.MethodPut, itemPath(remindersPath, id), in, &out)
	return out, err
}

func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, itemPath(remindersPath, id), nil, nil)
}

func (c *Client) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var out models.Dashboard
	err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &out)
	return out, err
}
