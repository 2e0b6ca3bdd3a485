package account

import "errors"

var (
	// ErrInvalidInput indicates invalid login or registration input.
	ErrInvalidInput = errors.New("invalid account input")
	// ErrInvalidCredentials indicates the API refused the email and password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
