package remote

import (
	"context"
	"net/http"

	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/jsonx"
)

// ItemRepository implements item.Repository over the API.
type ItemRepository struct {
	client *Client
}

// NewItemRepository creates a new analysis item repository.
func NewItemRepository(client *Client) *ItemRepository {
	return &ItemRepository{client: client}
}

func (r *ItemRepository) List(ctx context.Context) ([]item.Item, error) {
	var out []item.Item
	if err := r.client.get(ctx, "/itens-de-analise", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ItemRepository) Get(ctx context.Context, id jsonx.ID) (*item.Item, error) {
	var out item.Item
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/itens-de-analise/{id}",
		params: map[string]string{"id": id.String()},
		out:    &out,
		single: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	return r.client.post(ctx, "/itens-de-analise", it, it)
}

// AssayRepository implements assay.Repository over the API.
type AssayRepository struct {
	client *Client
}

// NewAssayRepository creates a new assay repository.
func NewAssayRepository(client *Client) *AssayRepository {
	return &AssayRepository{client: client}
}

func (r *AssayRepository) List(ctx context.Context) ([]assay.Assay, error) {
	var out []assay.Assay
	if err := r.client.get(ctx, "/ensaios", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssayRepository) ListByItem(ctx context.Context, itemID jsonx.ID) ([]assay.Assay, error) {
	var out []assay.Assay
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/ensaios/item-de-analise/{id}",
		params: map[string]string{"id": itemID.String()},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssayRepository) ListProcedures(ctx context.Context) ([]assay.Procedure, error) {
	var out []assay.Procedure
	if err := r.client.get(ctx, "/ensaio", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AssayRepository) Create(ctx context.Context, a *assay.Assay) error {
	return r.client.post(ctx, "/ensaios", a, a)
}
