package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the DevNote server (as opposed to a
// transport-level failure, which is returned as a wrapped net/http error).
// Status is the HTTP status code; Message carries the server's detail text
// when one could be extracted from the response body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server rejected request (%d)", e.Status)
}

// IsAuthError reports whether err means the session is missing or expired.
// Callers should prompt for a fresh `devnote login`.
func IsAuthError(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && (ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden)
}

// IsInvalid reports whether err is a request the server refused as malformed
// (typically a 400 with field errors from a create/update call).
func IsInvalid(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusBadRequest
}
