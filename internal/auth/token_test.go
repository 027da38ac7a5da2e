package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestNewCodec_EmptySecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestNewCodec_DefaultTTL(t *testing.T) {
	c, err := NewCodec(testSecret, 0)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if c.ttl != DefaultTTL {
		t.Fatalf("expected ttl %v, got %v", DefaultTTL, c.ttl)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t)
	in := Identity{ID: "u-1", Email: "a@x.com"}

	token, err := c.Issue(in)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	out, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out != in {
		t.Fatalf("identity mismatch: got %+v, want %+v", out, in)
	}
}

func TestCodec_IssueSetsSevenDayExpiryByDefault(t *testing.T) {
	c, _ := NewCodec(testSecret, 0)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	token, err := c.Issue(Identity{ID: "u-1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if got, want := claims.ExpiresAt.Time, fixed.Add(7*24*time.Hour); !got.Equal(want) {
		t.Fatalf("expires at %v, want %v", got, want)
	}
}

func TestCodec_Verify_Rejects(t *testing.T) {
	c := newTestCodec(t)
	now := time.Now()

	sign := func(method jwt.SigningMethod, key any, claims *Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("SignedString: %v", err)
		}
		return s
	}
	valid := func() *Claims {
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			UserID: "u-1",
			Email:  "a@x.com",
		}
	}

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	noUser := valid()
	noUser.UserID = ""
	noExp := valid()
	noExp.ExpiresAt = nil

	cases := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-jwt"},
		{"empty", ""},
		{"other secret", sign(jwt.SigningMethodHS256, []byte("different-key"), valid())},
		{"expired", sign(jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{"missing user id", sign(jwt.SigningMethodHS256, []byte(testSecret), noUser)},
		{"missing expiry", sign(jwt.SigningMethodHS256, []byte(testSecret), noExp)},
		{"rs256", sign(jwt.SigningMethodRS256, rsaKey, valid())},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Verify(tc.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestCodec_Verify_TamperedSignature(t *testing.T) {
	c := newTestCodec(t)
	token, err := c.Issue(Identity{ID: "u-1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	// flip a character well inside the signature segment
	i := len(token) - 5
	repl := byte('A')
	if token[i] == 'A' {
		repl = 'B'
	}
	tampered := token[:i] + string(repl) + token[i+1:]

	if _, err := c.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}
