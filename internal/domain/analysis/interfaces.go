package analysis

import (
	"context"

	"github.com/ganot/unolims/internal/jsonx"
)

// Repository provides remote access to analysis results.
type Repository interface {
	ListByBatch(ctx context.Context, batchID jsonx.ID) ([]Analysis, error)
	Create(ctx context.Context, a *Analysis) error
}
