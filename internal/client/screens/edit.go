package screens

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/client/services"
)

// Edit changes a video's title or requests a new translation. The two
// actions are revealed independently: Save when the title changed,
// Retranslate when the language or the mode changed.
type Edit struct {
	state
	videos services.VideoService

	video *models.Video
	title string
	lang  string
	mode  models.TranslationMode
}

func NewEdit(videos services.VideoService) *Edit {
	return &Edit{videos: videos}
}

func (e *Edit) Load(ctx context.Context, s models.Session, id string) error {
	if err := e.begin(); err != nil {
		return err
	}
	v, err := e.videos.Get(ctx, s, id)
	if err != nil {
		return e.fail(err, "Impossible de charger la vidéo")
	}
	e.mu.Lock()
	e.reset(v)
	e.mu.Unlock()
	e.succeed("")
	return nil
}

// reset makes v the unchanged baseline. Callers hold mu.
func (e *Edit) reset(v *models.Video) {
	e.video = v
	e.title = v.Title
	e.lang = v.TargetLang
	e.mode = v.TranslationMode
	if e.mode == "" {
		e.mode = models.ModeVoice
	}
}

func (e *Edit) Video() *models.Video {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.video == nil {
		return nil
	}
	v := *e.video
	return &v
}

func (e *Edit) SetTitle(t string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = t
}

func (e *Edit) SetTargetLang(code string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lang = models.NormalizeLanguage(code)
}

func (e *Edit) SetMode(m models.TranslationMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = m
}

// Draft returns the values currently entered.
func (e *Edit) Draft() (title, lang string, mode models.TranslationMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title, e.lang, e.mode
}

// TitleChanged reveals the Save action.
func (e *Edit) TitleChanged() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.video != nil && strings.TrimSpace(e.title) != strings.TrimSpace(e.video.Title)
}

// TranslationChanged reveals the Retranslate action.
func (e *Edit) TranslationChanged() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.video == nil {
		return false
	}
	mode := e.video.TranslationMode
	if mode == "" {
		mode = models.ModeVoice
	}
	return e.lang != e.video.TargetLang || e.mode != mode
}

// Save stores the new title. Language and mode only change through
// Retranslate, since the stored translation would not match them otherwise.
func (e *Edit) Save(ctx context.Context, s models.Session) error {
	v := e.Video()
	if v == nil {
		return ErrNotLoaded
	}
	title, _, _ := e.Draft()
	if err := e.begin(); err != nil {
		return err
	}
	updated, err := e.videos.SaveMetadata(ctx, s, v.ID.String(), models.VideoPatch{Title: &title})
	if err != nil {
		return e.fail(err, "Impossible de sauvegarder")
	}
	e.mu.Lock()
	lang, mode := e.lang, e.mode
	e.reset(updated)
	e.lang, e.mode = lang, mode
	e.mu.Unlock()
	e.succeed("Vidéo mise à jour")
	return nil
}

// Retranslate asks the backend for a new translation with the entered
// language and mode, then reloads the video.
func (e *Edit) Retranslate(ctx context.Context, s models.Session) error {
	v := e.Video()
	if v == nil {
		return ErrNotLoaded
	}
	_, lang, mode := e.Draft()
	if err := e.begin(); err != nil {
		return err
	}
	if err := e.videos.Retranslate(ctx, s, *v, lang, mode); err != nil {
		return e.fail(err, "Retraduction échouée")
	}
	fresh, err := e.videos.Get(ctx, s, v.ID.String())
	if err != nil {
		return e.fail(err, "Impossible de charger la vidéo")
	}
	e.mu.Lock()
	title := e.title
	e.reset(fresh)
	e.title = title
	e.mu.Unlock()
	e.succeed("Vidéo retraduite avec succès")
	return nil
}
