package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the server rejects a payload as malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable is returned when the remote API cannot be reached
	ErrUnavailable = errors.New("remote api unavailable")
)

// RemoteError is a non-success response from the LIMS API.
// Message carries the server's own explanation when it sent one.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: status %d", e.Status)
	}
	return fmt.Sprintf("remote api: status %d: %s", e.Status, e.Message)
}

// Is lets 4xx validation rejections match ErrInvalidInput.
func (e *RemoteError) Is(target error) bool {
	return target == ErrInvalidInput && (e.Status == 400 || e.Status == 422)
}

// ServerMessage returns the message the server attached to err, if any.
func ServerMessage(err error) (string, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message, true
	}
	return "", false
}
