package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
)

// AuthClient is the hosted email/password auth backend.
type AuthClient interface {
	// SignUp registers a user. The session is nil when the backend requires
	// e-mail confirmation before the first sign-in.
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, s models.Session) error
	UpdatePassword(ctx context.Context, s models.Session, newPassword string) error
	GetUser(ctx context.Context, s models.Session) (*models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
}

type gotrueAPI interface {
	Signup(req types.SignupRequest) (*types.SignupResponse, error)
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
	RefreshToken(refreshToken string) (*types.TokenResponse, error)
}

// tokenAPI is the part of the auth API that acts on behalf of a signed-in user.
type tokenAPI interface {
	Logout() error
	UpdateUser(req types.UpdateUserRequest) (*types.UpdateUserResponse, error)
	GetUser() (*types.UserResponse, error)
}

// GoTrueAuth implements AuthClient with gotrue-go.
type GoTrueAuth struct {
	api       gotrueAPI
	withToken func(token string) tokenAPI
	now       func() time.Time
}

// NewGoTrueAuth targets <projectURL>/auth/v1.
func NewGoTrueAuth(projectURL, anonKey string) *GoTrueAuth {
	c := gotrue.New("", anonKey).WithCustomGoTrueURL(strings.TrimRight(projectURL, "/") + "/auth/v1")
	return &GoTrueAuth{
		api:       c,
		withToken: func(token string) tokenAPI { return c.WithToken(token) },
		now:       time.Now,
	}
}

func (a *GoTrueAuth) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := a.api.Signup(types.SignupRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	if resp.AccessToken == "" {
		return nil, nil
	}
	return a.toSession(resp.Session)
}

func (a *GoTrueAuth) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := a.api.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, mapError(err)
	}
	return a.toSession(resp.Session)
}

func (a *GoTrueAuth) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if refreshToken == "" {
		return nil, ErrUnauthorized
	}
	resp, err := a.api.RefreshToken(refreshToken)
	if err != nil {
		return nil, mapError(err)
	}
	return a.toSession(resp.Session)
}

func (a *GoTrueAuth) SignOut(ctx context.Context, s models.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return mapError(a.withToken(s.AccessToken).Logout())
}

func (a *GoTrueAuth) UpdatePassword(ctx context.Context, s models.Session, newPassword string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := a.withToken(s.AccessToken).UpdateUser(types.UpdateUserRequest{Password: &newPassword})
	return mapError(err)
}

func (a *GoTrueAuth) GetUser(ctx context.Context, s models.Session) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := a.withToken(s.AccessToken).GetUser()
	if err != nil {
		return nil, mapError(err)
	}
	return &models.User{ID: userID(resp.ID), Email: resp.Email}, nil
}

func (a *GoTrueAuth) toSession(ts types.Session) (*models.Session, error) {
	if ts.AccessToken == "" {
		return nil, &BackendError{Message: "auth response carries no access token"}
	}
	s := &models.Session{
		AccessToken:  ts.AccessToken,
		RefreshToken: ts.RefreshToken,
		UserID:       userID(ts.User.ID),
		Email:        ts.User.Email,
	}
	switch {
	case ts.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(ts.ExpiresAt, 0)
	case ts.ExpiresIn > 0:
		s.ExpiresAt = a.now().Add(time.Duration(ts.ExpiresIn) * time.Second)
	}
	if err := s.FillFromToken(); err != nil && s.UserID == "" {
		return nil, errors.Join(&BackendError{Message: "auth response carries no user id"}, err)
	}
	return s, nil
}

func userID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
