package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mini_crm/internal/models"
	"mini_crm/internal/service"
)

func postJSON(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandlers_SignUpAndLogin(t *testing.T) {
	res := service.AuthResult{User: models.PublicUser{ID: "u1", Email: "u@example.com"}, Token: "tok123"}
	a := &mockAuth{signUpRes: res, loginRes: res}
	r := newTestRouter(&service.Service{Authorization: a})

	// signup success
	w := postJSON(t, r, "/api/auth/signup", `{"email":"u@example.com","password":"secret1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status=%d, body=%s", w.Code, w.Body.String())
	}
	var got service.AuthResult
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Token != "tok123" || got.User.ID != "u1" {
		t.Fatalf("unexpected signup body %s", w.Body.String())
	}
	if a.lastEmail != "u@example.com" || a.lastPassword != "secret1" {
		t.Fatalf("credentials not forwarded: %q %q", a.lastEmail, a.lastPassword)
	}

	// login success
	w = postJSON(t, r, "/api/auth/login", `{"email":"u@example.com","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Token != "tok123" {
		t.Fatalf("expected token tok123, got %v", got.Token)
	}

	// login invalid body → 400
	w = postJSON(t, r, "/api/auth/login", `{"email":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_FailuresAre400WithMessage(t *testing.T) {
	cases := []struct {
		name string
		path string
		auth *mockAuth
		want string
	}{
		{"email taken", "/api/auth/signup", &mockAuth{signUpErr: service.ErrEmailTaken}, "Email already registered"},
		{"unknown user", "/api/auth/login", &mockAuth{loginErr: service.ErrUserNotFound}, "User not found"},
		{"wrong password", "/api/auth/login", &mockAuth{loginErr: service.ErrInvalidCredentials}, "Invalid credentials"},
		{"short password", "/api/auth/signup", &mockAuth{signUpErr: &service.ValidationError{Field: "password", Message: "too short"}}, msgValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tc.auth})
			w := postJSON(t, r, tc.path, `{"email":"u@example.com","password":"secret1"}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400", w.Code)
			}
			var out struct {
				Message string `json:"message"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Message != tc.want {
				t.Fatalf("message %q, want %q", out.Message, tc.want)
			}
		})
	}
}

func TestAuthHandlers_RateLimited(t *testing.T) {
	a := &mockAuth{loginErr: service.ErrInvalidCredentials}
	r := newTestRouter(&service.Service{Authorization: a}, WithAuthRateLimit(0.001, 2))

	for i := 0; i < 2; i++ {
		if w := postJSON(t, r, "/api/auth/login", `{"email":"a@b.io","password":"x"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("attempt %d: status=%d, want 400", i, w.Code)
		}
	}
	w := postJSON(t, r, "/api/auth/login", `{"email":"a@b.io","password":"x"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the burst is spent, got %d", w.Code)
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	s := newTestServices()
	s.Authorization.(*mockAuth).meUser = models.PublicUser{ID: testUserID, Email: "u@example.com"}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header = authHeader("good")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		User models.PublicUser `json:"user"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.User.ID != testUserID {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
