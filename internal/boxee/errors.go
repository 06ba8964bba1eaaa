package boxee

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEndpoint is returned when a command is issued before the box was discovered.
	ErrNoEndpoint = errors.New("boxee: device endpoint not set")
	// ErrUnexpectedResponse is returned when a response body lacks the expected field.
	ErrUnexpectedResponse = errors.New("boxee: unexpected response")
)

// StatusError reports a non-2xx reply from the control API.
type StatusError struct {
	Command    Command
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("boxee: %s returned HTTP %d", e.Command, e.StatusCode)
}
