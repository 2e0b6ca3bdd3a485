package requester

import "context"

// Repository provides remote access to requesters.
type Repository interface {
	List(ctx context.Context) ([]Requester, error)
	Get(ctx context.Context, cnpj string) (*Requester, error)
	Create(ctx context.Context, r *Requester) error
}
