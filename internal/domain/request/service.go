package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"go.uber.org/zap"
)

// Service handles analysis request operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new analysis request service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// Create validates the form and opens the analysis request.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*AnalysisRequest, error) {
	req = req.trimmed()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	r := &AnalysisRequest{
		ProjectName:    req.ProjectName,
		AnalysisType:   req.AnalysisType,
		Deadline:       req.Deadline,
		Description:    req.Description,
		AdditionalInfo: req.AdditionalInfo,
		DeliveryMode:   req.DeliveryMode,
		OpenedBy:       req.OpenedBy,
		Requester:      requester.Ref(req.RequesterCNPJ),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating analysis request: %w", err)
	}

	s.logger.Info("analysis request opened",
		zap.String("project", r.ProjectName),
		zap.String("requester", req.RequesterCNPJ),
	)
	return r, nil
}

// Get fetches an analysis request by its SA code.
func (s *Service) Get(ctx context.Context, code string) (*AnalysisRequest, error) {
	normalized, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	r, err := s.repo.Get(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting analysis request: %w", err)
	}
	return r, nil
}

// List returns all analysis requests.
func (s *Service) List(ctx context.Context) ([]AnalysisRequest, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing analysis requests: %w", err)
	}
	return list, nil
}

// ListByRequester returns the analysis requests opened by one requester.
func (s *Service) ListByRequester(ctx context.Context, cnpj string) ([]AnalysisRequest, error) {
	list, err := s.repo.ListByRequester(ctx, cnpj)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []AnalysisRequest{}, nil
		}
		return nil, fmt.Errorf("listing requests for %s: %w", cnpj, err)
	}
	return list, nil
}
