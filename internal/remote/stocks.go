package remote

import (
	"context"
	"net/http"

	"github.com/ganot/unolims/internal/domain/reagent"
	"github.com/ganot/unolims/internal/domain/stock"
)

// StockRepository implements stock.Repository over the API.
type StockRepository struct {
	client *Client
}

// NewStockRepository creates a new stock repository.
func NewStockRepository(client *Client) *StockRepository {
	return &StockRepository{client: client}
}

func (r *StockRepository) List(ctx context.Context) ([]stock.Stock, error) {
	var out []stock.Stock
	if err := r.client.get(ctx, "/estoque", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StockRepository) Create(ctx context.Context, s *stock.Stock) error {
	return r.client.post(ctx, "/estoque", s, s)
}

// ReagentRepository implements reagent.Repository over the API.
type ReagentRepository struct {
	client *Client
}

// NewReagentRepository creates a new reagent repository.
func NewReagentRepository(client *Client) *ReagentRepository {
	return &ReagentRepository{client: client}
}

func (r *ReagentRepository) ListByStock(ctx context.Context, stockName string) ([]reagent.Reagent, error) {
	var out []reagent.Reagent
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/reagente",
		query:  map[string]string{"estoque": stockName},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReagentRepository) Create(ctx context.Context, re *reagent.Reagent) error {
	return r.client.post(ctx, "/reagente", re, re)
}
