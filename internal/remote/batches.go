package remote

import (
	"context"
	"net/http"

	"github.com/ganot/unolims/internal/domain/analysis"
	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/jsonx"
)

// BatchRepository implements batch.Repository over the API.
type BatchRepository struct {
	client *Client
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(client *Client) *BatchRepository {
	return &BatchRepository{client: client}
}

func (r *BatchRepository) Get(ctx context.Context, id jsonx.ID) (*batch.Batch, error) {
	var out batch.Batch
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/lote/{id}",
		params: map[string]string{"id": id.String()},
		out:    &out,
		single: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BatchRepository) ListByRequest(ctx context.Context, code string) ([]batch.Batch, error) {
	var out []batch.Batch
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/lote/solicitacao-analise",
		query:  map[string]string{"idSa": code},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BatchRepository) Create(ctx context.Context, b *batch.Batch) error {
	return r.client.post(ctx, "/lote", b, b)
}

// AnalysisRepository implements analysis.Repository over the API.
type AnalysisRepository struct {
	client *Client
}

// NewAnalysisRepository creates a new analysis repository.
func NewAnalysisRepository(client *Client) *AnalysisRepository {
	return &AnalysisRepository{client: client}
}

func (r *AnalysisRepository) ListByBatch(ctx context.Context, batchID jsonx.ID) ([]analysis.Analysis, error) {
	var out []analysis.Analysis
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/analise/{id}",
		params: map[string]string{"id": batchID.String()},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalysisRepository) Create(ctx context.Context, a *analysis.Analysis) error {
	return r.client.post(ctx, "/analise", a, a)
}
