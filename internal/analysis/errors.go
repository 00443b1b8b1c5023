package analysis

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a transport or decoding failure while calling the service.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analysis service %s returned HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatusError reports whether err wraps a *StatusError.
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}
