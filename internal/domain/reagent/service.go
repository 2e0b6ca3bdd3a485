package reagent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ganot/unolims/internal/domain/stock"
	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"go.uber.org/zap"
)

// Service handles reagent operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new reagent service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// CreateRequest holds the reagent form values.
type CreateRequest struct {
	StockName   string
	Name        string
	ExpiryDate  string
	Supplier    string
	Description string
	Unit        string
	Quantity    string
}

// Validate checks required fields, the expiry date and the quantity.
func (r CreateRequest) Validate() (quantity float64, err error) {
	var v form.Validator
	v.Required("estoque", r.StockName)
	v.Required("nome", r.Name)
	v.Date("dataValidade", r.ExpiryDate)
	v.Required("unidade", r.Unit)
	if q, ok := v.Decimal("quantidade", r.Quantity); ok {
		if q < 0 {
			v.Fail("quantidade", form.MsgNumber)
		}
		quantity = q
	}
	return quantity, v.Err()
}

// Create validates the form and adds the reagent to its stock.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Reagent, error) {
	req = CreateRequest{
		StockName:   strings.TrimSpace(req.StockName),
		Name:        strings.TrimSpace(req.Name),
		ExpiryDate:  strings.TrimSpace(req.ExpiryDate),
		Supplier:    strings.TrimSpace(req.Supplier),
		Description: strings.TrimSpace(req.Description),
		Unit:        strings.TrimSpace(req.Unit),
		Quantity:    strings.TrimSpace(req.Quantity),
	}
	qty, err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	r := &Reagent{
		Name:        req.Name,
		ExpiryDate:  req.ExpiryDate,
		Supplier:    req.Supplier,
		Description: req.Description,
		Unit:        req.Unit,
		Quantity:    qty,
		Stock:       stock.Ref(req.StockName),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating reagent: %w", err)
	}
	s.logger.Info("reagent added", zap.String("name", r.Name), zap.String("stock", req.StockName))
	return r, nil
}

// ListByStock returns the reagents of a stock.
func (s *Service) ListByStock(ctx context.Context, stockName string) ([]Reagent, error) {
	list, err := s.repo.ListByStock(ctx, stockName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []Reagent{}, nil
		}
		return nil, fmt.Errorf("listing reagents of %s: %w", stockName, err)
	}
	return list, nil
}
