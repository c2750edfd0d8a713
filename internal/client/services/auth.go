// Package services holds the client's application logic: input validation,
// session persistence and the orchestration of the external adapters.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/repositories/session"
	"github.com/dmitrijs2005/vidtranslator/internal/dbx"
	"github.com/dmitrijs2005/vidtranslator/internal/logging"
)

// AuthService signs users in and out and keeps the session between runs.
//
// Every method validates its input before contacting the backend.
type AuthService interface {
	// SignUp registers a user. The returned session is nil when the backend
	// asks for e-mail confirmation first.
	SignUp(ctx context.Context, email, password, confirm string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	// SignOut always forgets the local session, even if the backend call fails.
	SignOut(ctx context.Context, s models.Session) error
	UpdatePassword(ctx context.Context, s models.Session, newPassword, confirm string) error
	// User asks the backend who s belongs to.
	User(ctx context.Context, s models.Session) (*models.User, error)
	// CurrentSession restores the stored session, refreshing it if expired.
	// It returns ErrNoSession when nobody is signed in.
	CurrentSession(ctx context.Context) (*models.Session, error)
}

type authService struct {
	auth client.AuthClient
	db   *sql.DB
	log  logging.Logger
	now  func() time.Time
}

func NewAuthService(auth client.AuthClient, db *sql.DB, log logging.Logger) AuthService {
	return &authService{auth: auth, db: db, log: log, now: time.Now}
}

func (a *authService) SignUp(ctx context.Context, email, password, confirm string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || confirm == "" {
		return nil, ErrMissingFields
	}
	if err := checkNewPassword(password, confirm); err != nil {
		return nil, err
	}

	s, err := a.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if s == nil {
		a.log.Info(ctx, "sign up pending confirmation", "email", email)
		return nil, nil
	}
	if err := a.persist(ctx, *s); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "signed up", "user", s.UserID)
	return s, nil
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	s, err := a.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if err := a.persist(ctx, *s); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "signed in", "user", s.UserID)
	return s, nil
}

func (a *authService) SignOut(ctx context.Context, s models.Session) error {
	if s.AccessToken != "" {
		if err := a.auth.SignOut(ctx, s); err != nil {
			a.log.Warn(ctx, "backend sign out failed", "error", err)
		}
	}
	if err := session.NewSQLiteRepository(a.db).Clear(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	a.log.Info(ctx, "signed out", "user", s.UserID)
	return nil
}

func (a *authService) UpdatePassword(ctx context.Context, s models.Session, newPassword, confirm string) error {
	if newPassword == "" || confirm == "" {
		return ErrMissingFields
	}
	if err := checkNewPassword(newPassword, confirm); err != nil {
		return err
	}
	if !s.Valid() {
		return ErrNoSession
	}
	if err := a.auth.UpdatePassword(ctx, s, newPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (a *authService) User(ctx context.Context, s models.Session) (*models.User, error) {
	if !s.Valid() {
		return nil, ErrNoSession
	}
	u, err := a.auth.GetUser(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (a *authService) CurrentSession(ctx context.Context) (*models.Session, error) {
	s, ok, err := session.Load(ctx, session.NewSQLiteRepository(a.db))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSession
	}
	if !s.Expired(a.now()) {
		return &s, nil
	}

	fresh, err := a.auth.Refresh(ctx, s.RefreshToken)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrUnavailable):
		return nil, fmt.Errorf("refresh session: %w", err)
	default:
		a.log.Info(ctx, "stored session rejected, signing out", "error", err)
		if cerr := session.NewSQLiteRepository(a.db).Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, ErrNoSession
	}

	if fresh.Email == "" {
		fresh.Email = s.Email
	}
	if err := a.persist(ctx, *fresh); err != nil {
		return nil, err
	}
	a.log.Debug(ctx, "session refreshed", "user", fresh.UserID)
	return fresh, nil
}

// persist replaces the stored session atomically.
func (a *authService) persist(ctx context.Context, s models.Session) error {
	err := dbx.WithTx(ctx, a.db, func(ctx context.Context, tx dbx.DBTX) error {
		r := session.NewSQLiteRepository(tx)
		if err := r.Clear(ctx); err != nil {
			return err
		}
		return session.Save(ctx, r, s)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func checkNewPassword(password, confirm string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
