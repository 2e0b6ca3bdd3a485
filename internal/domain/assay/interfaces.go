package assay

import (
	"context"

	"github.com/ganot/unolims/internal/jsonx"
)

// Repository provides remote access to assays.
type Repository interface {
	List(ctx context.Context) ([]Assay, error)
	ListByItem(ctx context.Context, itemID jsonx.ID) ([]Assay, error)
	ListProcedures(ctx context.Context) ([]Procedure, error)
	Create(ctx context.Context, a *Assay) error
}

// ItemSource lists the items whose assays are merged by ListAcrossItems.
type ItemSource interface {
	ItemIDs(ctx context.Context) ([]jsonx.ID, error)
}
