// Package dashboard reads the laboratory counters shown on the main view.
package dashboard

import (
	"context"
	"fmt"

	"github.com/ganot/unolims/internal/logging"
	"go.uber.org/zap"
)

// Summary is returned pre-aggregated by the API.
type Summary struct {
	Requests   int        `json:"solicitacoes"`
	Requesters int        `json:"solicitantes"`
	Items      ItemTotals `json:"itensDeAnalise"`
	Assays     int        `json:"ensaios"`
	Pending    int        `json:"ensaiosPendente"`
	InProgress int        `json:"ensaiosEmAndamento"`
	Completed  int        `json:"ensaiosConcluidos"`
}

type ItemTotals struct {
	Sum struct {
		Available float64 `json:"quantidadeDisponivel"`
	} `json:"_sum"`
}

// Bar is one column of the assay chart. Label is an i18n key.
type Bar struct {
	Label string
	Value int
}

// Bars returns the assay counters in chart order.
func (s Summary) Bars() []Bar {
	return []Bar{
		{Label: "dashboard.assays", Value: s.Assays},
		{Label: "dashboard.pending", Value: s.Pending},
		{Label: "dashboard.inProgress", Value: s.InProgress},
		{Label: "dashboard.completed", Value: s.Completed},
	}
}

// Repository reads the dashboard counters.
type Repository interface {
	Get(ctx context.Context) (*Summary, error)
}

// Service handles dashboard reads.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new dashboard service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// Get returns the current counters.
func (s *Service) Get(ctx context.Context) (*Summary, error) {
	sum, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting dashboard: %w", err)
	}
	return sum, nil
}
