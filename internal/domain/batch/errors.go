package batch

import "errors"

var (
	// ErrNotFound indicates the batch doesn't exist.
	ErrNotFound = errors.New("batch not found")
	// ErrInvalidInput indicates invalid batch input.
	ErrInvalidInput = errors.New("invalid batch input")
)
