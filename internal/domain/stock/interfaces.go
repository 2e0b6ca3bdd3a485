package stock

import "context"

// Repository provides remote access to stocks.
type Repository interface {
	List(ctx context.Context) ([]Stock, error)
	Create(ctx context.Context, s *Stock) error
}
