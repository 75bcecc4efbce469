package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/naveenspark/postdesk/pkg/domain"
)

// ErrUnauthorized matches (via errors.Is) any HTTPError carrying a 401.
var ErrUnauthorized = errors.New("unauthorized")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	// Message is the server-supplied "error" field, if any.
	Message string
	// Details holds the messages of a server-side validation failure.
	Details []string
	// Body is the raw response body, kept when the server sent no error field.
	Body string
}

func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if len(e.Details) > 0 {
		msg = strings.TrimSpace(msg + " (" + strings.Join(e.Details, ", ") + ")")
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsUnauthorized reports whether err is (or wraps) a 401 from the API.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// Message turns any failure into the single string shown to the user.
// Client-side validation messages and server validation details win, then the
// server's "error" field, then fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if len(httpErr.Details) > 0 {
			return "Validation error: " + strings.Join(httpErr.Details, ", ")
		}
		if httpErr.Message != "" {
			return httpErr.Message
		}
	}
	return fallback
}
