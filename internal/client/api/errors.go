package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the SIAP API. Message is whatever
// the server put in its {"message": ...} payload, empty when the body
// carried none. The client performs no retries and no translation;
// interpreting the status is up to the caller.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is an API error with status 401,
// i.e. the session credential was missing, invalid or expired.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ServerMessage extracts the server-provided message from err, or ""
// when err is not an API error or carried no message.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
