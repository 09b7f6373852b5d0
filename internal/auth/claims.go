package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields of a session token the client relies on. The signature is
// not verified here: the server stays the authority, the client only needs the role
// and expiry to decide where to route a restored session.
type Claims struct {
	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// ParseTokenClaims decodes token and rejects it when it is malformed, expired at now,
// or carries an unknown role.
func ParseTokenClaims(token string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: expired at %s", ErrInvalidToken, claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	if _, err := ParseRole(string(claims.Role)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	return claims, nil
}

// User returns the session user described by the claims.
func (c *Claims) User() *User {
	id := c.UserID
	if id == "" {
		id = c.Subject
	}
	role, _ := ParseRole(string(c.Role))
	return &User{
		ID:    id,
		Email: c.Email,
		Role:  role,
	}
}
