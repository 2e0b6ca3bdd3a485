package item

import "errors"

var (
	// ErrNotFound indicates the analysis item doesn't exist.
	ErrNotFound = errors.New("analysis item not found")
	// ErrInvalidInput indicates invalid analysis item input.
	ErrInvalidInput = errors.New("invalid analysis item input")
)
