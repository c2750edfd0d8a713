package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/vidtranslator/internal/client/client"
	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/common"
	"github.com/dmitrijs2005/vidtranslator/internal/filex"
	"github.com/dmitrijs2005/vidtranslator/internal/logging"
)

// MaxVideoSize bounds the file PickFile will load into memory.
const MaxVideoSize = 512 << 20

// TranslateService runs the upload → translate → record flow.
type TranslateService interface {
	// PickFile loads a local video and detects its MIME type.
	PickFile(path string) (*models.LocalFile, error)
	// Translate uploads file, asks the backend for a translation and records
	// the new video. A failed upload is not cleaned up.
	Translate(ctx context.Context, s models.Session, file *models.LocalFile, title, lang string, mode models.TranslationMode) (*models.Video, error)
}

type translateService struct {
	objects    client.ObjectStore
	translator client.Translator
	videos     client.VideoStore
	bucket     string
	log        logging.Logger

	now   func() time.Time
	newID func() string
}

func NewTranslateService(objects client.ObjectStore, translator client.Translator, videos client.VideoStore, bucket string, log logging.Logger) TranslateService {
	if bucket == "" {
		bucket = common.DefaultOriginalBucket
	}
	return &translateService{
		objects:    objects,
		translator: translator,
		videos:     videos,
		bucket:     bucket,
		log:        log,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
}

func (t *translateService) PickFile(path string) (*models.LocalFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrNoFile
	}
	data, err := filex.ReadFile(path, MaxVideoSize)
	if err != nil {
		return nil, err
	}
	mt, err := detectVideoType(data)
	if err != nil {
		return nil, err
	}
	return &models.LocalFile{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: mt,
		Data:     data,
	}, nil
}

// detectVideoType sniffs data. Unrecognised binary content is assumed to be
// mp4; anything recognised as another kind of file is rejected.
func detectVideoType(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "video/") {
			return strings.SplitN(m.String(), ";", 2)[0], nil
		}
	}
	if mt.Is("application/octet-stream") {
		return common.DefaultVideoMIMEType, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotVideo, mt.String())
}

func (t *translateService) Translate(ctx context.Context, s models.Session, file *models.LocalFile, title, lang string, mode models.TranslationMode) (*models.Video, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, ErrNoFile
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
	}
	if !models.IsSupportedLanguage(lang) {
		return nil, ErrUnsupportedLanguage
	}
	mode, err := models.ParseTranslationMode(string(mode))
	if err != nil {
		return nil, err
	}
	if !s.Valid() {
		return nil, ErrNoSession
	}

	key := t.objectKey(file.Name)
	contentType := file.MIMEType
	if contentType == "" {
		contentType = common.DefaultVideoMIMEType
	}
	log := t.log.With("key", key, "user", s.UserID)

	if err := t.objects.Upload(ctx, s, t.bucket, key, contentType, file.Data); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	originalURL := t.objects.PublicURL(t.bucket, key)
	if originalURL == "" {
		return nil, errors.New("upload: no public url")
	}
	log.Info(ctx, "original uploaded", "bytes", len(file.Data))

	res, err := t.translator.Translate(ctx, models.TranslateRequest{
		OriginalURL:     originalURL,
		Title:           title,
		TargetLang:      lang,
		TranslationMode: mode,
		UserID:          s.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	log.Info(ctx, "translation ready", "url", res.TranslatedURL)

	v, err := t.videos.Insert(ctx, s, models.NewVideo{
		UserID:          s.UserID,
		Title:           title,
		OriginalURL:     originalURL,
		TranslatedURL:   res.TranslatedURL,
		SubtitleURL:     res.SubtitleURL,
		TargetLang:      lang,
		TranslationMode: mode,
	})
	if err != nil {
		return nil, fmt.Errorf("record video: %w", err)
	}
	return v, nil
}

// objectKey builds user_<unix millis>_<uuid>_<sanitised name>.
func (t *translateService) objectKey(name string) string {
	return fmt.Sprintf("user_%d_%s_%s", t.now().UnixMilli(), t.newID(), common.SanitizeObjectName(name))
}
