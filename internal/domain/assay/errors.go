package assay

import "errors"

var (
	// ErrInvalidInput indicates invalid assay input.
	ErrInvalidInput = errors.New("invalid assay input")
)
