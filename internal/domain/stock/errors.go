package stock

import "errors"

// ErrInvalidInput indicates invalid stock input.
var ErrInvalidInput = errors.New("invalid stock input")

// ErrNotFound indicates no stock has the requested name.
var ErrNotFound = errors.New("stock not found")
