// Package models defines the video record, the session and the request types
// exchanged with the hosted backend and the translation service.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidRecord is returned when a row from the backend does not have the
// shape of a video record.
var ErrInvalidRecord = errors.New("invalid video record")

// TranslationMode selects what the backend produces for a video.
type TranslationMode string

const (
	ModeVoice    TranslationMode = "voice"
	ModeSubtitle TranslationMode = "subtitle"
	ModeBoth     TranslationMode = "both"
)

// Modes lists the translation modes in display order.
var Modes = []TranslationMode{ModeVoice, ModeSubtitle, ModeBoth}

// ParseTranslationMode validates s. Surrounding space and case are ignored.
func ParseTranslationMode(s string) (TranslationMode, error) {
	m := TranslationMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeVoice, ModeSubtitle, ModeBoth:
		return m, nil
	}
	return "", fmt.Errorf("unknown translation mode %q", s)
}

// HasSubtitles reports whether the mode produces a subtitle track.
func (m TranslationMode) HasSubtitles() bool {
	return m == ModeSubtitle || m == ModeBoth
}

// ID is an opaque row identifier. The table may key rows by integer or by
// uuid, so both JSON numbers and strings are accepted.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("id %s: not an integer", n)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Video is one row of the videos table. Nullable URL columns are pointers.
type Video struct {
	ID              ID              `json:"id"`
	UserID          string          `json:"user_id"`
	Title           string          `json:"title"`
	OriginalURL     string          `json:"original_url"`
	TranslatedURL   *string         `json:"translated_url"`
	ThumbnailURL    *string         `json:"thumbnail_url"`
	TargetLang      string          `json:"target_lang"`
	TranslationMode TranslationMode `json:"translation_mode"`
	SubtitleURL     *string         `json:"subtitle_url"`
	CreatedAt       time.Time       `json:"created_at"`
}

// UnmarshalJSON accepts the legacy "thumbnail" column as a fallback for
// thumbnail_url.
func (v *Video) UnmarshalJSON(b []byte) error {
	type plain Video
	var aux struct {
		plain
		Thumbnail *string `json:"thumbnail"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*v = Video(aux.plain)
	if v.ThumbnailURL == nil && aux.Thumbnail != nil {
		v.ThumbnailURL = aux.Thumbnail
	}
	return nil
}

// Validate checks a decoded row and normalises defaults in place: an empty
// translation mode becomes voice, and blank nullable URLs become nil.
func (v *Video) Validate() error {
	var errs []error
	if v.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if v.UserID == "" {
		errs = append(errs, errors.New("missing user_id"))
	}
	if strings.TrimSpace(v.OriginalURL) == "" {
		errs = append(errs, errors.New("missing original_url"))
	}

	if v.TranslationMode == "" {
		v.TranslationMode = ModeVoice
	} else if m, err := ParseTranslationMode(string(v.TranslationMode)); err != nil {
		errs = append(errs, err)
	} else {
		v.TranslationMode = m
	}

	if v.TargetLang != "" && !IsSupportedLanguage(v.TargetLang) {
		errs = append(errs, fmt.Errorf("unknown target_lang %q", v.TargetLang))
	}

	v.TranslatedURL = blankToNil(v.TranslatedURL)
	v.ThumbnailURL = blankToNil(v.ThumbnailURL)
	v.SubtitleURL = blankToNil(v.SubtitleURL)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, errors.Join(errs...))
	}
	return nil
}

// Translated reports whether the translated video is available.
func (v Video) Translated() bool {
	return v.TranslatedURL != nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// NewVideo is the insert payload for a freshly translated video. id and
// created_at are assigned by the backend.
type NewVideo struct {
	UserID          string          `json:"user_id"`
	Title           string          `json:"title"`
	OriginalURL     string          `json:"original_url"`
	TranslatedURL   string          `json:"translated_url"`
	SubtitleURL     *string         `json:"subtitle_url,omitempty"`
	TargetLang      string          `json:"target_lang"`
	TranslationMode TranslationMode `json:"translation_mode"`
}

// VideoPatch is a partial update. Nil fields are left untouched.
type VideoPatch struct {
	Title           *string          `json:"title,omitempty"`
	TargetLang      *string          `json:"target_lang,omitempty"`
	TranslationMode *TranslationMode `json:"translation_mode,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p VideoPatch) Empty() bool {
	return p.Title == nil && p.TargetLang == nil && p.TranslationMode == nil
}
