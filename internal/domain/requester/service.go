package requester

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"go.uber.org/zap"
)

// Service handles requester operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new requester service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// Create validates the form and registers the requester.
// Nothing is sent when validation fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Requester, error) {
	req = req.trimmed()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	r := &Requester{
		CNPJ:       req.CNPJ,
		Name:       req.Name,
		PostalCode: req.PostalCode,
		Street:     req.Street,
		Number:     req.Number,
		City:       req.City,
		State:      req.State,
		Contact:    req.Contact,
		Phone:      req.Phone,
		Email:      req.Email,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating requester: %w", err)
	}

	s.logger.Info("requester registered", zap.String("cnpj", r.CNPJ))
	return r, nil
}

// Get fetches a requester by CNPJ.
func (s *Service) Get(ctx context.Context, cnpj string) (*Requester, error) {
	r, err := s.repo.Get(ctx, cnpj)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting requester: %w", err)
	}
	return r, nil
}

// List returns all requesters.
func (s *Service) List(ctx context.Context) ([]Requester, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing requesters: %w", err)
	}
	return list, nil
}
