package reagent

import "context"

// Repository provides remote access to reagents.
type Repository interface {
	ListByStock(ctx context.Context, stockName string) ([]Reagent, error)
	Create(ctx context.Context, r *Reagent) error
}
