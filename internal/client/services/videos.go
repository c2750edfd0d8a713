package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/logging"
)

// VideoService reads and edits the signed-in user's videos.
type VideoService interface {
	List(ctx context.Context, s models.Session) ([]models.Video, error)
	// Recent returns the newest videos shown on the home screen.
	Recent(ctx context.Context, s models.Session) ([]models.Video, error)
	// Search returns no videos for a blank query.
	Search(ctx context.Context, s models.Session, query string) ([]models.Video, error)
	Get(ctx context.Context, s models.Session, id string) (*models.Video, error)
	SaveMetadata(ctx context.Context, s models.Session, id string, patch models.VideoPatch) (*models.Video, error)
	// Retranslate requests a new translation of v. The backend refreshes the
	// row; callers reload it.
	Retranslate(ctx context.Context, s models.Session, v models.Video, lang string, mode models.TranslationMode) error
	Delete(ctx context.Context, s models.Session, id string) error
}

type videoService struct {
	store       client.VideoStore
	translator  client.Translator
	recentLimit int
	log         logging.Logger
}

func NewVideoService(store client.VideoStore, translator client.Translator, recentLimit int, log logging.Logger) VideoService {
	return &videoService{store: store, translator: translator, recentLimit: recentLimit, log: log}
}

func (v *videoService) List(ctx context.Context, s models.Session) ([]models.Video, error) {
	if !s.Valid() {
		return nil, ErrNoSession
	}
	return v.store.List(ctx, s, 0)
}

func (v *videoService) Recent(ctx context.Context, s models.Session) ([]models.Video, error) {
	if !s.Valid() {
		return nil, ErrNoSession
	}
	return v.store.List(ctx, s, v.recentLimit)
}

func (v *videoService) Search(ctx context.Context, s models.Session, query string) ([]models.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Video{}, nil
	}
	if !s.Valid() {
		return nil, ErrNoSession
	}
	return v.store.Search(ctx, s, query)
}

func (v *videoService) Get(ctx context.Context, s models.Session, id string) (*models.Video, error) {
	if !s.Valid() {
		return nil, ErrNoSession
	}
	return v.store.Get(ctx, s, id)
}

func (v *videoService) SaveMetadata(ctx context.Context, s models.Session, id string, patch models.VideoPatch) (*models.Video, error) {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, ErrEmptyTitle
		}
		patch.Title = &t
	}
	if patch.TargetLang != nil && !models.IsSupportedLanguage(*patch.TargetLang) {
		return nil, ErrUnsupportedLanguage
	}
	if patch.TranslationMode != nil {
		if _, err := models.ParseTranslationMode(string(*patch.TranslationMode)); err != nil {
			return nil, err
		}
	}
	if !s.Valid() {
		return nil, ErrNoSession
	}

	updated, err := v.store.Update(ctx, s, id, patch)
	if err != nil {
		return nil, fmt.Errorf("save video %s: %w", id, err)
	}
	v.log.Info(ctx, "video updated", "id", id)
	return updated, nil
}

func (v *videoService) Retranslate(ctx context.Context, s models.Session, video models.Video, lang string, mode models.TranslationMode) error {
	if strings.TrimSpace(video.OriginalURL) == "" {
		return ErrNoOriginalURL
	}
	if !models.IsSupportedLanguage(lang) {
		return ErrUnsupportedLanguage
	}
	mode, err := models.ParseTranslationMode(string(mode))
	if err != nil {
		return err
	}
	if !s.Valid() {
		return ErrNoSession
	}

	_, err = v.translator.Retranslate(ctx, models.RetranslateRequest{
		VideoID:         video.ID.String(),
		VideoURL:        video.OriginalURL,
		TargetLang:      lang,
		TranslationMode: mode,
	})
	if err != nil {
		return fmt.Errorf("retranslate video %s: %w", video.ID, err)
	}
	v.log.Info(ctx, "retranslation requested", "id", video.ID, "lang", lang, "mode", mode)
	return nil
}

func (v *videoService) Delete(ctx context.Context, s models.Session, id string) error {
	if !s.Valid() {
		return ErrNoSession
	}
	if err := v.store.Delete(ctx, s, id); err != nil {
		return fmt.Errorf("delete video %s: %w", id, err)
	}
	v.log.Info(ctx, "video deleted", "id", id)
	return nil
}
