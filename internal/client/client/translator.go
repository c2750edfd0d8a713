package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/netx"
)

// Translator is the external translation backend.
type Translator interface {
	// Translate asks the backend to translate an already uploaded original.
	Translate(ctx context.Context, req models.TranslateRequest) (*models.TranslateResult, error)
	// Retranslate asks for a new translation of an existing video. The
	// backend updates the video row itself.
	Retranslate(ctx context.Context, req models.RetranslateRequest) (*models.TranslateResult, error)
}

// HTTPTranslator talks to the backend's /translate and /retranslate routes.
type HTTPTranslator struct {
	baseURL string
	http    *http.Client
}

// NewHTTPTranslator returns a translator for baseURL. A zero timeout leaves
// requests unbounded.
func NewHTTPTranslator(baseURL string, timeout time.Duration) *HTTPTranslator {
	return &HTTPTranslator{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type translateResponse struct {
	TranslatedURL string  `json:"translated_url"`
	SubtitleURL   *string `json:"subtitle_url"`
	Error         string  `json:"error"`
}

func (t *HTTPTranslator) Translate(ctx context.Context, req models.TranslateRequest) (*models.TranslateResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range [][2]string{
		{"original_url", req.OriginalURL},
		{"title", req.Title},
		{"target_lang", req.TargetLang},
		{"translation_mode", string(req.TranslationMode)},
		{"user_id", req.UserID},
	} {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	res, err := t.post(ctx, "translate", w.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	if res.TranslatedURL == "" {
		return nil, ErrNoTranslatedURL
	}
	return res, nil
}

func (t *HTTPTranslator) Retranslate(ctx context.Context, req models.RetranslateRequest) (*models.TranslateResult, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return t.post(ctx, "retranslate", "application/json", bytes.NewReader(b))
}

func (t *HTTPTranslator) post(ctx context.Context, route, contentType string, body io.Reader) (*models.TranslateResult, error) {
	endpoint, err := netx.JoinURL(t.baseURL, route)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.http.Do(httpReq)
	if err != nil {
		return nil, mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := netx.ReadErrorBody(resp)
		return nil, &BackendError{Status: resp.StatusCode, Message: backendMessage([]byte(msg), msg)}
	}

	var tr translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, &BackendError{Status: resp.StatusCode, Message: "undecodable response: " + err.Error()}
	}
	if tr.Error != "" {
		return nil, &BackendError{Status: resp.StatusCode, Message: tr.Error}
	}

	res := &models.TranslateResult{TranslatedURL: tr.TranslatedURL}
	if tr.SubtitleURL != nil && *tr.SubtitleURL != "" {
		res.SubtitleURL = tr.SubtitleURL
	}
	return res, nil
}
