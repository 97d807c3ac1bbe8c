package platform

import (
	"errors"
	"fmt"
)

var (
	ErrNoToken      = errors.New("platform returned no token")
	ErrNoUser       = errors.New("platform returned no user")
	ErrEmptyBaseURL = errors.New("platform base URL is empty")
)

// APIError is a non-2xx platform response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform responded %d", e.StatusCode)
	}
	return fmt.Sprintf("platform responded %d: %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether err is a platform 401/403.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
