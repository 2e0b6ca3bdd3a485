package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/logging"
	"go.uber.org/zap"
)

// Service handles stock operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new stock service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// CreateRequest holds the stock form values.
type CreateRequest struct {
	Name          string
	RequesterCNPJ string
}

// Validate checks the stock name and the owner's CNPJ.
func (r CreateRequest) Validate() error {
	var v form.Validator
	v.Required("nome", r.Name)
	v.CNPJ("cnpj", r.RequesterCNPJ)
	return v.Err()
}

// Create validates the form and opens the stock.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Stock, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.RequesterCNPJ = strings.TrimSpace(req.RequesterCNPJ)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	st := &Stock{Name: req.Name, Requester: requester.Ref(req.RequesterCNPJ)}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("creating stock: %w", err)
	}
	s.logger.Info("stock created", zap.String("name", st.Name))
	return st, nil
}

// List returns all stocks.
func (s *Service) List(ctx context.Context) ([]Stock, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing stocks: %w", err)
	}
	return list, nil
}

// Get returns the stock with the given name. There is no single-stock
// endpoint, so the list is searched.
func (s *Service) Get(ctx context.Context, name string) (*Stock, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Name == name {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}
