// Package netx contains HTTP helpers shared by the backend adapters.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody bounds how much of a failed response is kept for messages.
const maxErrorBody = 4 << 10

// IsNetworkError reports whether err stems from the transport (DNS, refused
// connection, reset, timeout) rather than from a response the server sent.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	var oe *net.OpError
	return errors.As(err, &oe)
}

// ReadErrorBody returns a trimmed, size-limited copy of resp.Body for use in
// error messages. It never fails; an unreadable body yields the status text.
func ReadErrorBody(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(strings.TrimSpace(string(b))) == 0 {
		return resp.Status
	}
	return strings.TrimSpace(string(b))
}

// JoinURL appends path segments to base, tolerating stray slashes.
func JoinURL(base string, elem ...string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("parse %q: missing scheme or host", base)
	}
	return u.JoinPath(elem...).String(), nil
}
