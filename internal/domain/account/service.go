package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"go.uber.org/zap"
)

// Service handles login and registration and keeps the current session.
type Service struct {
	repo   Repository
	sink   TokenSink
	logger *zap.Logger

	mu      sync.RWMutex
	current *Session
}

// NewService creates a new account service. sink may be nil.
func NewService(repo Repository, sink TokenSink, logger *zap.Logger) *Service {
	return &Service{repo: repo, sink: sink, logger: logging.OrNop(logger)}
}

// Authenticate validates the credentials and signs in without remembering
// the session or handing its token to the sink.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	var v form.Validator
	if v.Required("email", creds.Email) {
		v.Email("email", creds.Email)
	}
	v.Required("senha", creds.Password)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	sess, err := s.repo.Login(ctx, creds)
	if err != nil {
		var remote *repository.RemoteError
		if errors.As(err, &remote) && (remote.Status == http.StatusUnauthorized || remote.Status == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("logging in: %w", err)
	}
	s.logger.Info("logged in", zap.String("email", creds.Email), zap.String("role", sess.User.Role))
	return sess, nil
}

// Login signs in like Authenticate and remembers the session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	sess, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	if s.sink != nil {
		s.sink.SetToken(sess.Token)
	}
	return sess, nil
}

// Logout forgets the current session.
func (s *Service) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if s.sink != nil {
		s.sink.SetToken("")
	}
}

// Current returns the remembered session, if any.
func (s *Service) Current() (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// ValidateRegistration checks a sign-up form.
func ValidateRegistration(reg Registration) error {
	var v form.Validator
	v.Required("nome", reg.Name)
	v.OneOf("cargo", reg.Role, Roles)
	if v.Required("email", reg.Email) {
		v.Email("email", reg.Email)
	}
	v.Required("senha", reg.Password)
	if v.Required("confirmarSenha", reg.PasswordConfirm) && reg.Password != reg.PasswordConfirm {
		v.Fail("confirmarSenha", form.MsgPasswordMismatch)
	}
	return v.Err()
}

// Register validates the form and creates the account.
func (s *Service) Register(ctx context.Context, reg Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Role = strings.ToUpper(strings.TrimSpace(reg.Role))
	if reg.Role == "" {
		reg.Role = DefaultRole
	}
	if err := ValidateRegistration(reg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.repo.Register(ctx, reg); err != nil {
		return fmt.Errorf("registering account: %w", err)
	}
	s.logger.Info("account registered", zap.String("email", reg.Email), zap.String("role", reg.Role))
	return nil
}
