package request

import "errors"

var (
	// ErrNotFound indicates the analysis request doesn't exist.
	ErrNotFound = errors.New("analysis request not found")
	// ErrInvalidInput indicates invalid analysis request input.
	ErrInvalidInput = errors.New("invalid analysis request input")
)
