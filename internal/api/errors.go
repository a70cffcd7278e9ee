package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the backend: the HTTP status (or the
// body's own code when present), the server message and any per-field
// validation errors.
type Error struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.Code)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Code)
}

// IsUnauthorized reports whether err is a server-side 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized
}

// IsNotFound reports whether err is a server-side 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
