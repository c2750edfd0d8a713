package screens

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/nav"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

const msgLoadVideos = "Impossible de charger les vidéos"

// Home restores the session and shows the most recent videos.
type Home struct {
	state
	auth       services.AuthService
	videos     services.VideoService
	nav        Navigator
	setSession SessionSetter

	session *models.Session
	recent  []models.Video
}

func NewHome(auth services.AuthService, videos services.VideoService, n Navigator, set SessionSetter) *Home {
	return &Home{auth: auth, videos: videos, nav: n, setSession: set}
}

// Load checks the session first. Without one the user is sent to the login
// screen and Load returns services.ErrNoSession.
func (h *Home) Load(ctx context.Context) (*models.Session, error) {
	if err := h.begin(); err != nil {
		return nil, err
	}
	s, err := h.auth.CurrentSession(ctx)
	if errors.Is(err, services.ErrNoSession) {
		h.mu.Lock()
		h.status = StatusIdle
		h.mu.Unlock()
		h.setSession(nil)
		_ = h.nav.Reset(nav.To(nav.Login))
		return nil, err
	}
	if err != nil {
		return nil, h.fail(err, "Erreur de vérification d'authentification")
	}
	h.setSession(s)

	vs, err := h.videos.Recent(ctx, *s)
	if err != nil {
		return s, h.fail(err, msgLoadVideos)
	}
	h.mu.Lock()
	h.session = s
	h.recent = vs
	h.mu.Unlock()
	h.succeed("")
	return s, nil
}

// Email of the signed-in user, for the greeting.
func (h *Home) Email() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		return ""
	}
	return h.session.Email
}

func (h *Home) Recent() []models.Video {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneVideos(h.recent)
}

// VideoList shows every video of the user.
type VideoList struct {
	state
	videos services.VideoService
	items  []models.Video
}

func NewVideoList(videos services.VideoService) *VideoList {
	return &VideoList{videos: videos}
}

func (l *VideoList) Load(ctx context.Context, s models.Session) error {
	if err := l.begin(); err != nil {
		return err
	}
	vs, err := l.videos.List(ctx, s)
	if err != nil {
		return l.fail(err, msgLoadVideos)
	}
	l.mu.Lock()
	l.items = vs
	l.mu.Unlock()
	l.succeed("")
	return nil
}

// Refresh reloads the list (pull-to-refresh).
func (l *VideoList) Refresh(ctx context.Context, s models.Session) error {
	return l.Load(ctx, s)
}

func (l *VideoList) Videos() []models.Video {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneVideos(l.items)
}

// Detail shows one video and can delete it.
type Detail struct {
	state
	videos services.VideoService
	nav    Navigator
	video  *models.Video
}

func NewDetail(videos services.VideoService, n Navigator) *Detail {
	return &Detail{videos: videos, nav: n}
}

// Load fetches video id. On failure the screen is left.
func (d *Detail) Load(ctx context.Context, s models.Session, id string) error {
	if err := d.begin(); err != nil {
		return err
	}
	v, err := d.videos.Get(ctx, s, id)
	if err != nil {
		d.nav.Back()
		return d.fail(err, "Impossible de charger la vidéo")
	}
	d.mu.Lock()
	d.video = v
	d.mu.Unlock()
	d.succeed("")
	return nil
}

func (d *Detail) Video() *models.Video {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.video == nil {
		return nil
	}
	v := *d.video
	return &v
}

// Delete removes the loaded video and goes back home. Callers ask for
// confirmation first.
func (d *Detail) Delete(ctx context.Context, s models.Session) error {
	v := d.Video()
	if v == nil {
		return ErrNotLoaded
	}
	if err := d.begin(); err != nil {
		return err
	}
	if err := d.videos.Delete(ctx, s, v.ID.String()); err != nil {
		return d.fail(err, "Impossible de supprimer la vidéo")
	}
	d.mu.Lock()
	d.video = nil
	d.mu.Unlock()
	d.succeed("Vidéo supprimée")
	_ = d.nav.Reset(nav.To(nav.Home))
	return nil
}
