package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mini_crm/internal/models"
	"mini_crm/internal/service"
)

const (
	layoutMinute   = "2006-01-02T15:04"
	layoutSeconds  = "2006-01-02T15:04:05"
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// parseFlexTime accepts RFC3339 and the zone-less layouts sent by HTML date
// inputs; zone-less values are read as UTC.
func parseFlexTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, layoutMinute, layoutSeconds, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time %q, expected RFC3339, 'YYYY-MM-DDTHH:MM', 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}

// flexTime is a time.Time decoded with parseFlexTime. null and "" leave it zero.
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parsed, err := parseFlexTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t *flexTime) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("budget must be a number")
	}
	*f = flexFloat(v)
	return nil
}

// nullableID tells an absent reference apart from one explicitly cleared
// with null or "".
type nullableID struct {
	Set   bool
	Value string
}

func (n *nullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = ""
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

// ptr returns nil when absent and a pointer to "" when cleared.
func (n nullableID) ptr() *string {
	if !n.Set {
		return nil
	}
	v := strings.TrimSpace(n.Value)
	return &v
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// signUpRequest adds the password policy; login accepts whatever was set.
type signUpRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

type ClientRequest struct {
	Name    string  `json:"name" binding:"required" example:"Acme Inc"`
	Email   string  `json:"email" binding:"required,email" example:"ops@acme.io"`
	Phone   string  `json:"phone" binding:"required" example:"+1 555 0100"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

func (r ClientRequest) input() service.ClientInput {
	return service.ClientInput{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
		Company: r.Company,
		Notes:   r.Notes,
	}
}

type ClientUpdateRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,min=1"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

func (r ClientUpdateRequest) patch() models.ClientPatch {
	return models.ClientPatch{
		Name:    trimPtr(r.Name),
		Email:   trimPtr(r.Email),
		Phone:   trimPtr(r.Phone),
		Company: r.Company,
		Notes:   r.Notes,
	}
}

type ProjectRequest struct {
	Title    string     `json:"title" binding:"required" example:"Website redesign"`
	Budget   flexFloat  `json:"budget" binding:"gte=0" swaggertype:"number" example:"1500"`
	Deadline flexTime   `json:"deadline" swaggertype:"string" example:"2025-09-30"`
	Status   string     `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed" enums:"pending,in_progress,completed"`
	ClientID nullableID `json:"clientId,omitempty" swaggertype:"string"`
}

func (r ProjectRequest) input() service.ProjectInput {
	return service.ProjectInput{
		Title:    strings.TrimSpace(r.Title),
		Budget:   float64(r.Budget),
		Deadline: r.Deadline.Time,
		Status:   models.ProjectStatus(strings.TrimSpace(r.Status)),
		ClientID: r.ClientID.ptr(),
	}
}

type ProjectUpdateRequest struct {
	Title    *string    `json:"title,omitempty" binding:"omitempty,min=1"`
	Budget   *flexFloat `json:"budget,omitempty" binding:"omitempty,gte=0" swaggertype:"number"`
	Deadline *flexTime  `json:"deadline,omitempty" swaggertype:"string"`
	Status   *string    `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed" enums:"pending,in_progress,completed"`
	ClientID nullableID `json:"clientId,omitempty" swaggertype:"string"`
}

func (r ProjectUpdateRequest) patch() models.ProjectPatch {
	p := models.ProjectPatch{
		Title:    trimPtr(r.Title),
		Deadline: r.Deadline.ptr(),
		ClientID: r.ClientID.ptr(),
	}
	if r.Budget != nil {
		b := float64(*r.Budget)
		p.Budget = &b
	}
	if r.Status != nil {
		st := models.ProjectStatus(strings.TrimSpace(*r.Status))
		p.Status = &st
	}
	return p
}

type InteractionRequest struct {
	Date      flexTime   `json:"date" swaggertype:"string" example:"2025-08-01T10:30"`
	Type      string     `json:"type" binding:"required" example:"call"`
	Notes     string     `json:"notes"`
	ClientID  nullableID `json:"clientId,omitempty" swaggertype:"string"`
	ProjectID nullableID `json:"projectId,omitempty" swaggertype:"string"`
}

func (r InteractionRequest) input() service.InteractionInput {
	return service.InteractionInput{
		Date:      r.Date.Time,
		Type:      strings.TrimSpace(r.Type),
		Notes:     r.Notes,
		ClientID:  r.ClientID.ptr(),
		ProjectID: r.ProjectID.ptr(),
	}
}

type InteractionUpdateRequest struct {
	Date      *flexTime  `json:"date,omitempty" swaggertype:"string"`
	Type      *string    `json:"type,omitempty" binding:"omitempty,min=1"`
	Notes     *string    `json:"notes,omitempty"`
	ClientID  nullableID `json:"clientId,omitempty" swaggertype:"string"`
	ProjectID nullableID `json:"projectId,omitempty" swaggertype:"string"`
}

func (r InteractionUpdateRequest) patch() models.InteractionPatch {
	return models.InteractionPatch{
		Date:      r.Date.ptr(),
		Type:      trimPtr(r.Type),
		Notes:     r.Notes,
		ClientID:  r.ClientID.ptr(),
		ProjectID: r.ProjectID.ptr(),
	}
}

type ReminderRequest struct {
	DueDate   flexTime   `json:"dueDate" swaggertype:"string" example:"2025-08-05"`
	Notes     string     `json:"notes" example:"Send the proposal"`
	ClientID  nullableID `json:"clientId,omitempty" swaggertype:"string"`
	ProjectID nullableID `json:"projectId,omitempty" swaggertype:"string"`
}

func (r ReminderRequest) input() service.ReminderInput {
	return service.ReminderInput{
		DueDate:   r.DueDate.Time,
		Notes:     r.Notes,
		ClientID:  r.ClientID.ptr(),
		ProjectID: r.ProjectID.ptr(),
	}
}

type ReminderUpdateRequest struct {
	DueDate   *flexTime  `json:"dueDate,omitempty" swaggertype:"string"`
	Notes     *string    `json:"notes,omitempty"`
	ClientID  nullableID `json:"clientId,omitempty" swaggertype:"string"`
	ProjectID nullableID `json:"projectId,omitempty" swaggertype:"string"`
}

func (r ReminderUpdateRequest) patch() models.ReminderPatch {
	return models.ReminderPatch{
		DueDate:   r.DueDate.ptr(),
		Notes:     r.Notes,
		ClientID:  r.ClientID.ptr(),
		ProjectID: r.ProjectID.ptr(),
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
