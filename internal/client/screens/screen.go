// Package screens implements the client's screens as small state machines,
// independent of how they are rendered.
//
// Every action follows the same shape: it refuses to start while another
// action of the same screen is loading, and it ends either in StatusSuccess or
// back in StatusIdle with an alert describing the failure.
package screens

import (
	"errors"
	"sync"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/nav"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	default:
		return "idle"
	}
}

// ErrBusy is returned when an action is triggered while the screen is loading.
var ErrBusy = errors.New("action already in progress")

// ErrNotLoaded is returned by actions that need data the screen has not loaded.
var ErrNotLoaded = errors.New("nothing loaded")

// Alert titles.
const (
	TitleError   = "Erreur"
	TitleSuccess = "Succès"
)

// Alert is the modal message shown after an action.
type Alert struct {
	Title   string
	Message string
}

func (a Alert) String() string { return a.Title + ": " + a.Message }

// Navigator is the part of nav.Router screens drive.
type Navigator interface {
	Push(nav.Route) error
	Replace(nav.Route) error
	Reset(nav.Route) error
	Back() (nav.Route, bool)
}

// SessionSetter receives the session after sign-in and nil after sign-out.
type SessionSetter func(*models.Session)

var userMessages = []struct {
	err error
	msg string
}{
	{services.ErrMissingFields, "Veuillez remplir tous les champs"},
	{services.ErrPasswordTooShort, "Le mot de passe doit contenir au moins 6 caractères"},
	{services.ErrPasswordMismatch, "Les mots de passe ne correspondent pas"},
	{services.ErrNoFile, "Veuillez importer une vidéo"},
	{services.ErrNotVideo, "Le fichier sélectionné n'est pas une vidéo"},
	{services.ErrEmptyTitle, "Saisir un titre"},
	{services.ErrNoOriginalURL, "URL originale introuvable"},
	{services.ErrUnsupportedLanguage, "Langue non prise en charge"},
	{services.ErrNoSession, "Erreur de vérification d'authentification"},
	{client.ErrNoTranslatedURL, "Aucune URL reçue du backend"},
	{client.ErrNotFound, "Vidéo introuvable"},
	{client.ErrUnauthorized, MsgSessionExpired},
}

// MsgSessionExpired is shown when the backend rejects the session token.
const MsgSessionExpired = "Session expirée, veuillez vous reconnecter"

// AlertMessage turns err into the text shown to the user. Validation errors
// have fixed messages, backend errors are shown verbatim and everything else,
// network failures included, falls back to fallback.
func AlertMessage(err error, fallback string) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	if errors.Is(err, client.ErrUnavailable) {
		return fallback
	}
	var be *client.BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}

// state is the status and alert shared by every screen.
type state struct {
	mu      sync.Mutex
	status  Status
	alert   *Alert
	lastErr error
}

func (s *state) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusLoading {
		return ErrBusy
	}
	s.status = StatusLoading
	s.alert = nil
	s.lastErr = nil
	return nil
}

// fail returns the screen to idle with an error alert and passes err through.
func (s *state) fail(err error, fallback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	s.lastErr = err
	s.alert = &Alert{Title: TitleError, Message: AlertMessage(err, fallback)}
	return err
}

// succeed ends the action. An empty msg shows no alert.
func (s *state) succeed(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusSuccess
	if msg != "" {
		s.alert = &Alert{Title: TitleSuccess, Message: msg}
	}
}

func (s *state) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Loading reports whether an action is outstanding.
func (s *state) Loading() bool { return s.Status() == StatusLoading }

// Alert returns the pending alert, or nil.
func (s *state) Alert() *Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alert
}

// DismissAlert clears the pending alert.
func (s *state) DismissAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = nil
}

// LastError is the error behind the current error alert.
func (s *state) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// cloneVideos keeps callers from mutating screen data.
func cloneVideos(vs []models.Video) []models.Video {
	if vs == nil {
		return nil
	}
	out := make([]models.Video, len(vs))
	copy(out, vs)
	return out
}
