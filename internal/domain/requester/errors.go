package requester

import "errors"

var (
	// ErrNotFound indicates no requester has the given CNPJ.
	ErrNotFound = errors.New("requester not found")
	// ErrInvalidInput indicates invalid requester input.
	ErrInvalidInput = errors.New("invalid requester input")
)
