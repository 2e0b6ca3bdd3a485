package analysis

import "errors"

// ErrInvalidInput indicates invalid analysis input.
var ErrInvalidInput = errors.New("invalid analysis input")
