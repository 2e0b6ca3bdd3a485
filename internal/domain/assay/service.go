package assay

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/jsonx"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/resource"
	"go.uber.org/zap"
)

// Service handles assay operations.
type Service struct {
	repo   Repository
	items  ItemSource
	limit  int
	logger *zap.Logger
}

// NewService creates a new assay service. limit bounds concurrent per-item
// reads in ListAcrossItems; 0 reads every item at once.
func NewService(repo Repository, items ItemSource, limit int, logger *zap.Logger) *Service {
	return &Service{repo: repo, items: items, limit: limit, logger: logging.OrNop(logger)}
}

// Create validates the form and schedules the assay.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Assay, error) {
	req = req.trimmed()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	a := &Assay{
		Name:          req.Name,
		Specification: req.Specification,
		ItemID:        jsonx.ID(req.ItemID),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating assay: %w", err)
	}

	s.logger.Info("assay scheduled", zap.String("name", a.Name), zap.String("item_id", req.ItemID))
	return a, nil
}

// List returns every assay known to the API.
func (s *Service) List(ctx context.Context) ([]Assay, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing assays: %w", err)
	}
	return list, nil
}

// ListByItem returns the assays of one item. An unknown item has no assays.
func (s *Service) ListByItem(ctx context.Context, itemID string) ([]Assay, error) {
	list, err := s.repo.ListByItem(ctx, jsonx.ID(itemID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []Assay{}, nil
		}
		return nil, fmt.Errorf("listing assays of item %s: %w", itemID, err)
	}
	return list, nil
}

// ListProcedures returns the assay catalog.
func (s *Service) ListProcedures(ctx context.Context) ([]Procedure, error) {
	list, err := s.repo.ListProcedures(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing assay procedures: %w", err)
	}
	return list, nil
}

// ListAcrossItems reads the assays of every item concurrently and merges them.
// Items whose read fails are reported in FailedItems and left out of the result.
// It errors only when the item list itself cannot be read; when every item
// fails the listing is empty and names them all.
func (s *Service) ListAcrossItems(ctx context.Context) (Listing, error) {
	ids, err := s.items.ItemIDs(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("listing items for assays: %w", err)
	}

	settled := resource.Gather(ctx, ids, s.limit, func(ctx context.Context, id jsonx.ID) ([]Assay, error) {
		return s.ListByItem(ctx, id.String())
	})

	listing := Listing{Items: len(ids), Assays: []Assay{}}
	for _, batch := range settled.Values() {
		listing.Assays = append(listing.Assays, batch...)
	}
	for _, failure := range settled.Failures() {
		listing.FailedItems = append(listing.FailedItems, failure.Key)
		s.logger.Warn("assay read failed",
			zap.String("item_id", failure.Key.String()),
			zap.Error(failure.Err),
		)
	}
	return listing, nil
}
