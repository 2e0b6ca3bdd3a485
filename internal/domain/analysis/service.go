package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/jsonx"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"go.uber.org/zap"
)

// Service handles analysis result operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new analysis service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// Create validates the form and records the result against the batch.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Analysis, error) {
	req = req.trimmed()
	p, err := req.validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	a := &Analysis{
		Specification: p.specification,
		Result:        p.result,
		Unit:          req.Unit,
		Note:          req.Note,
		Batch:         batch.Ref(jsonx.ID(req.BatchID)),
		Assay:         &AssayRef{Name: req.Assay},
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating analysis: %w", err)
	}

	s.logger.Info("analysis recorded", zap.String("batch_id", req.BatchID), zap.String("assay", req.Assay))
	return a, nil
}

// ListByBatch returns the results recorded for a batch.
func (s *Service) ListByBatch(ctx context.Context, batchID string) ([]Analysis, error) {
	list, err := s.repo.ListByBatch(ctx, jsonx.ID(batchID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []Analysis{}, nil
		}
		return nil, fmt.Errorf("listing analyses of batch %s: %w", batchID, err)
	}
	return list, nil
}
