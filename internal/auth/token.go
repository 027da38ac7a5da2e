// Package auth issues and verifies the signed bearer tokens that carry a
// user's identity between requests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

// Identity is the payload signed into every token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Codec signs and verifies HS256 tokens with a shared secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for id that expires after the codec TTL.
func (c *Codec) Issue(id Identity) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: id.ID,
		Email:  id.Email,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and returns the identity it carries. Any failure
// (bad signature, foreign algorithm, expiry, malformed input) wraps
// ErrInvalidToken.
func (c *Codec) Verify(token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: claims.UserID, Email: claims.Email}, nil
}
