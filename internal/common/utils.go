package common

import (
	"strings"
	"unicode"
)

// WipeByteArray zeroes b in place. Used for password buffers read from the
// terminal once they have been handed to the auth backend.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SanitizeObjectName makes a user-supplied file name safe to use inside an
// object-storage key: path separators and whitespace become '_', other
// characters outside [A-Za-z0-9._-] are dropped.
func SanitizeObjectName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			sb.WriteByte('_')
		case r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
		}
	}
	out := strings.Trim(sb.String(), "._")
	if out == "" {
		return "video"
	}
	return out
}
