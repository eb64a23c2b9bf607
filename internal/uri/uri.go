// Package uri handles the percent-encoded URIs the editor persists.
package uri

import (
	"errors"
	"fmt"
	"net/url"
	"unicode/utf8"
)

// ErrInvalidEscape is returned when a URI holds a malformed %XX sequence or
// decodes to bytes that are not valid UTF-8.
var ErrInvalidEscape = errors.New("invalid percent escape")

// Decode reverses %XX escaping. A literal '+' is kept as is.
func Decode(raw string) (string, error) {
	s, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEscape, err)
	}
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8 once decoded", ErrInvalidEscape, raw)
	}
	return s, nil
}

// Encode escapes s so that Decode(Encode(s)) == s.
func Encode(s string) string {
	return url.PathEscape(s)
}
