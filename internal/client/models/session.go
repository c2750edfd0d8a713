package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated state handed to every data call. It is passed
// explicitly; nothing in the client keeps a global current user.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       string
	Email        string
}

// User is the identity the auth backend reports for a session.
type User struct {
	ID    string
	Email string
}

// expirySkew renews sessions slightly before the backend would reject them.
const expirySkew = 30 * time.Second

// Expired reports whether the access token should be considered stale at now.
// A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(expirySkew).Before(s.ExpiresAt)
}

// Valid reports whether s carries enough to scope data calls.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.UserID != ""
}

// AccessClaims is the subset of the access-token payload the client reads.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseAccessClaims decodes the claims of an access token without verifying
// its signature. The client only uses them to fill in identity fields the
// auth response left out; the backend verifies tokens on every request.
func ParseAccessClaims(token string) (*AccessClaims, error) {
	var claims AccessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("parse access token: missing sub")
	}
	return &claims, nil
}

// FillFromToken completes UserID, Email and ExpiresAt from the access token
// when they are empty.
func (s *Session) FillFromToken() error {
	if s.UserID != "" && s.Email != "" && !s.ExpiresAt.IsZero() {
		return nil
	}
	c, err := ParseAccessClaims(s.AccessToken)
	if err != nil {
		return err
	}
	if s.UserID == "" {
		s.UserID = c.Subject
	}
	if s.Email == "" {
		s.Email = c.Email
	}
	if s.ExpiresAt.IsZero() && c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return nil
}
