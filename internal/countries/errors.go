package countries

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the upstream API knows no country by the
// requested name.
var ErrNotFound = errors.New("country not found")

// UpstreamError indicates the country API could not serve the request: it
// was unreachable, answered with an unexpected status, or sent a body that
// could not be decoded.
type UpstreamError struct {
	StatusCode int // zero when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("country API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("country API unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
