package batch

import (
	"context"

	"github.com/ganot/unolims/internal/jsonx"
)

// Repository provides remote access to batches.
type Repository interface {
	Get(ctx context.Context, id jsonx.ID) (*Batch, error)
	ListByRequest(ctx context.Context, code string) ([]Batch, error)
	Create(ctx context.Context, b *Batch) error
}
