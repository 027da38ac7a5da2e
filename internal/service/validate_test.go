package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mini_crm/internal/models"
)

func TestCheck_ReportsFirstFieldFailure(t *testing.T) {
	neg := -1.0
	zero := 0.0
	bogus := models.ProjectStatus("archived")
	cases := []struct {
		name      string
		in        any
		wantField string
		wantMsg   string
	}{
		{"display name email", ClientInput{Name: "Evil", Email: "Evil Corp <c@acme.com>", Phone: "1"}, "email", "must be a valid email address"},
		{"blank name", ClientInput{Name: "  ", Email: "a@b.io", Phone: "1"}, "name", "is required"},
		{"patch display name email", models.ClientPatch{Email: strp("Evil Corp <c@acme.com>")}, "email", "must be a valid email address"},
		{"patch cleared phone", models.ClientPatch{Phone: strp("")}, "phone", "is required"},
		{"short password", credentials{Email: "a@b.io", Password: "12345"}, "password", "must be at least 6 characters"},
		{"negative budget", ProjectInput{Title: "t", Budget: -5, Deadline: time.Now()}, "budget", "must not be negative"},
		{"patch negative budget", models.ProjectPatch{Budget: &neg}, "budget", "must not be negative"},
		{"unknown status", models.ProjectPatch{Status: &bogus}, "status", "must be one of pending, in_progress, completed"},
		{"missing due date", ReminderInput{Notes: "x"}, "dueDate", "is required"},
		{"missing deadline", ProjectInput{Title: "t"}, "deadline", "is required"},
		{"blank type", InteractionInput{Date: time.Now(), Type: " "}, "type", "is required"},
		{"zero budget is fine", models.ProjectPatch{Budget: &zero}, "", ""},
		{"empty patch is fine", models.InteractionPatch{}, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := check(tc.in)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tc.wantField || ve.Message != tc.wantMsg {
				t.Fatalf("got %q %q, want %q %q", ve.Field, ve.Message, tc.wantField, tc.wantMsg)
			}
		})
	}
}

func TestClientService_RejectsDisplayNameEmail(t *testing.T) {
	repo := &fakeClientRepo{rows: map[string]models.Client{
		"c1": {ID: "c1", Name: "Acme", Email: "ops@acme.io", UserID: "u1"},
	}}
	svc := NewClientService(repo)

	_, err := svc.Create(context.Background(), "u1", ClientInput{Name: "Evil", Email: "Evil Corp <c@acme.com>", Phone: "1"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error on create, got %v", err)
	}
	_, err = svc.Update(context.Background(), "u1", "c1", models.ClientPatch{Email: strp("Evil Corp <c@acme.com>")})
	if !IsValidation(err) {
		t.Fatalf("expected validation error on update, got %v", err)
	}
	if got := repo.rows["c1"].Email; got != "ops@acme.io" {
		t.Fatalf("email changed to %q", got)
	}
}
