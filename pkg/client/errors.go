package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionInvalid is matched by errors.Is for any 401 response outside of login.
// By the time a caller sees it, the stored credential has already been removed.
var ErrSessionInvalid = errors.New("session invalid")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
	// sessionInvalid is set when the 401 policy ran for this response.
	sessionInvalid bool
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes ErrSessionInvalid for responses that cleared the session.
func (e *HTTPError) Unwrap() error {
	if e.sessionInvalid {
		return ErrSessionInvalid
	}
	return nil
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsSessionInvalid returns true if err resulted from the 401 policy.
func IsSessionInvalid(err error) bool {
	return errors.Is(err, ErrSessionInvalid)
}

// Message returns the backend's human-readable message carried by err,
// or fallback when err is not an API error or carries no message.
func Message(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return fallback
}

// statusText is used when the error body is empty.
func statusText(code int) string {
	if t := http.StatusText(code); t != "" {
		return t
	}
	return "unexpected status"
}
