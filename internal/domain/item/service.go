package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/jsonx"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"go.uber.org/zap"
)

// Service handles analysis item operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new analysis item service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// Create validates the form and registers the item.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	req = req.trimmed()
	qty, err := req.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	it := &Item{
		Quantity:     qty,
		Unit:         req.Unit,
		MaterialType: req.MaterialType,
		Lot:          req.Lot,
		Invoice:      req.Invoice,
		Condition:    req.Condition,
		Note:         req.Note,
		RequestID:    jsonx.ID(req.RequestID),
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("creating analysis item: %w", err)
	}

	s.logger.Info("analysis item registered",
		zap.String("id", it.ID.String()),
		zap.String("request_id", req.RequestID),
	)
	return it, nil
}

// Get fetches an item with its request and assays.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	it, err := s.repo.Get(ctx, jsonx.ID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting analysis item: %w", err)
	}
	return it, nil
}

// List returns all analysis items.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing analysis items: %w", err)
	}
	return list, nil
}

// ItemIDs returns the id of every analysis item, in list order.
func (s *Service) ItemIDs(ctx context.Context) ([]jsonx.ID, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]jsonx.ID, 0, len(list))
	for _, it := range list {
		ids = append(ids, it.ID)
	}
	return ids, nil
}
