package osint

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a provider has no record for the
	// queried target. This is a normal lookup outcome, not a failure.
	ErrNotFound = errors.New("osint: target not found")

	// ErrRateLimited is returned when a provider rejects the request
	// for quota reasons. Callers should back off or reduce batch size.
	ErrRateLimited = errors.New("osint: rate limited by provider")

	// ErrUnauthorized is returned when a provider rejects the API key.
	ErrUnauthorized = errors.New("osint: provider rejected API key")
)

// StatusError is returned for unexpected HTTP statuses that do not map
// to one of the sentinel errors above. It keeps a truncated copy of the
// response body because provider error messages are often the only clue
// to what went wrong.
type StatusError struct {
	// Provider is the provider name, e.g. "shodan".
	Provider string

	// StatusCode is the HTTP status the provider returned.
	StatusCode int

	// Body is the response body, truncated to a printable size.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("osint: %s returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("osint: %s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}
