package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	storage_go "github.com/supabase-community/storage-go"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/netx"
)

var (
	ErrUnavailable     = errors.New("backend unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("video not found")
	ErrNoTranslatedURL = errors.New("no translated_url in response")
	ErrInvalidRecord   = models.ErrInvalidRecord
)

// BackendError is a failure reported by a backend, with its message kept
// verbatim so it can be shown to the user. Status is 0 when unknown.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 and 403 responses.
func (e *BackendError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

var (
	gotrueStatusRe = regexp.MustCompile(`^response status code (\d{3}):?\s*(.*)$`)
	postgrestRe    = regexp.MustCompile(`^\(([A-Z0-9]*)\)\s*(.*)$`)
)

// mapError converts SDK and transport errors into the package's sentinels or
// a *BackendError.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var be *BackendError
	if errors.As(err, &be) ||
		errors.Is(err, ErrUnavailable) || errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoTranslatedURL) ||
		errors.Is(err, ErrInvalidRecord) {
		return err
	}

	if netx.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var se *storage_go.StorageError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = "storage request failed"
		}
		return &BackendError{Status: se.Status, Message: msg}
	}

	text := err.Error()
	if m := gotrueStatusRe.FindStringSubmatch(text); m != nil {
		status, _ := strconv.Atoi(m[1])
		return &BackendError{Status: status, Message: backendMessage([]byte(m[2]), http.StatusText(status))}
	}
	if m := postgrestRe.FindStringSubmatch(text); m != nil {
		if strings.HasPrefix(m[1], "PGRST30") {
			return fmt.Errorf("%w: %s", ErrUnauthorized, m[2])
		}
		if m[1] == "PGRST116" {
			return ErrNotFound
		}
		return &BackendError{Message: m[2]}
	}

	return &BackendError{Message: text}
}

// backendMessage picks the human-readable message out of a JSON error body.
// Keys are tried in the order the hosted services use them.
func backendMessage(body []byte, fallback string) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, k := range []string{"error_description", "msg", "message", "error"} {
			if s, ok := payload[k].(string); ok && s != "" {
				return s
			}
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" && !strings.HasPrefix(s, "{") {
		return s
	}
	return fallback
}
