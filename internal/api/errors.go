package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the authorization outcomes the rest of the client keys
// its policy on. Everything else surfaces as a plain *Error.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Error is a non-2xx response from the drive API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Unwrap maps the status code onto the sentinel taxonomy so callers can use
// errors.Is without inspecting codes.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// IsUnauthorized reports whether err means the session is gone and the user
// must log in again.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsForbidden reports whether err means the session is valid but the resource
// is off limits.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }
