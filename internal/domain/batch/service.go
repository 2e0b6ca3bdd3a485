package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/jsonx"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"go.uber.org/zap"
)

// Service handles batch operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new batch service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// Create validates the form and registers the batch.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Batch, error) {
	req = req.trimmed()
	qty, code, err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	b := &Batch{
		Sample:      req.Sample,
		Invoice:     req.Invoice,
		EntryDate:   req.EntryDate,
		ExpiryDate:  req.ExpiryDate,
		Description: req.Description,
		Quantity:    qty,
		Request:     &request.AnalysisRequest{Code: code},
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating batch: %w", err)
	}

	s.logger.Info("batch registered", zap.String("sample", b.Sample), zap.String("request", code))
	return b, nil
}

// Get fetches a batch by id.
func (s *Service) Get(ctx context.Context, id string) (*Batch, error) {
	b, err := s.repo.Get(ctx, jsonx.ID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting batch: %w", err)
	}
	return b, nil
}

// ListByRequest returns the batches received under an analysis request.
func (s *Service) ListByRequest(ctx context.Context, code string) ([]Batch, error) {
	normalized, err := request.NormalizeCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	list, err := s.repo.ListByRequest(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []Batch{}, nil
		}
		return nil, fmt.Errorf("listing batches of %s: %w", normalized, err)
	}
	return list, nil
}
