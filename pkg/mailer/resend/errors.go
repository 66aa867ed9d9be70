package resend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingAPIKey = errors.New("resend: api key is not configured")
	ErrInvalidURL    = errors.New("resend: invalid base url")
)

// APIError is a non-2xx answer from the Resend API.
type APIError struct {
	Err        error
	Status     string // status text, e.g. "Unprocessable Entity"
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Failed to send email: %s - %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

// Retryable reports whether sending again may succeed.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
