package reagent

import "errors"

// ErrInvalidInput indicates invalid reagent input.
var ErrInvalidInput = errors.New("invalid reagent input")
