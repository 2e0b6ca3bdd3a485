package remote

import (
	"context"
	"net/http"

	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
)

// RequesterRepository implements requester.Repository over the API.
type RequesterRepository struct {
	client *Client
}

// NewRequesterRepository creates a new requester repository.
func NewRequesterRepository(client *Client) *RequesterRepository {
	return &RequesterRepository{client: client}
}

func (r *RequesterRepository) List(ctx context.Context) ([]requester.Requester, error) {
	var out []requester.Requester
	if err := r.client.get(ctx, "/solicitante/listagem", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RequesterRepository) Get(ctx context.Context, cnpj string) (*requester.Requester, error) {
	var out requester.Requester
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/solicitante",
		query:  map[string]string{"cnpj": cnpj},
		out:    &out,
		single: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RequesterRepository) Create(ctx context.Context, req *requester.Requester) error {
	return r.client.post(ctx, "/solicitante", req, req)
}

// RequestRepository implements request.Repository over the API.
type RequestRepository struct {
	client *Client
}

// NewRequestRepository creates a new analysis request repository.
func NewRequestRepository(client *Client) *RequestRepository {
	return &RequestRepository{client: client}
}

func (r *RequestRepository) List(ctx context.Context) ([]request.AnalysisRequest, error) {
	var out []request.AnalysisRequest
	if err := r.client.get(ctx, "/solicitacao-analise/listagem", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RequestRepository) Get(ctx context.Context, code string) (*request.AnalysisRequest, error) {
	var out request.AnalysisRequest
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/solicitacao-analise",
		query:  map[string]string{"id_sa": code},
		out:    &out,
		single: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RequestRepository) ListByRequester(ctx context.Context, cnpj string) ([]request.AnalysisRequest, error) {
	var out []request.AnalysisRequest
	err := r.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/solicitacao-analise/solicitante",
		query:  map[string]string{"cnpj": cnpj},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RequestRepository) Create(ctx context.Context, req *request.AnalysisRequest) error {
	return r.client.post(ctx, "/solicitacao-analise", req, req)
}
