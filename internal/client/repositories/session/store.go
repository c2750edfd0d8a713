package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
)

// Keys under which a models.Session is stored.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyExpiresAt    = "expires_at"
	KeyUserID       = "user_id"
	KeyEmail        = "email"
)

// Save writes every field of s. Callers wanting atomicity pass a repository
// bound to a transaction.
func Save(ctx context.Context, r Repository, s models.Session) error {
	var expires string
	if !s.ExpiresAt.IsZero() {
		expires = strconv.FormatInt(s.ExpiresAt.Unix(), 10)
	}
	for _, kv := range [][2]string{
		{KeyAccessToken, s.AccessToken},
		{KeyRefreshToken, s.RefreshToken},
		{KeyExpiresAt, expires},
		{KeyUserID, s.UserID},
		{KeyEmail, s.Email},
	} {
		if err := r.Set(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the stored session. ok is false when no access token is stored.
func Load(ctx context.Context, r Repository) (s models.Session, ok bool, err error) {
	all, err := r.List(ctx)
	if err != nil {
		return models.Session{}, false, err
	}
	if all[KeyAccessToken] == "" {
		return models.Session{}, false, nil
	}

	s = models.Session{
		AccessToken:  all[KeyAccessToken],
		RefreshToken: all[KeyRefreshToken],
		UserID:       all[KeyUserID],
		Email:        all[KeyEmail],
	}
	if raw := all[KeyExpiresAt]; raw != "" {
		sec, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Session{}, false, fmt.Errorf("stored %s: %w", KeyExpiresAt, err)
		}
		s.ExpiresAt = time.Unix(sec, 0)
	}
	return s, true, nil
}
