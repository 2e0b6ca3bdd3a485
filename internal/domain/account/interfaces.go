package account

import "context"

// Repository talks to the authentication endpoints.
type Repository interface {
	Login(ctx context.Context, creds Credentials) (*Session, error)
	Register(ctx context.Context, reg Registration) error
}

// TokenSink receives the bearer token after a successful login.
type TokenSink interface {
	SetToken(token string)
}
