package item

import (
	"context"

	"github.com/ganot/unolims/internal/jsonx"
)

// Repository provides remote access to analysis items.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id jsonx.ID) (*Item, error)
	Create(ctx context.Context, it *Item) error
}
