package request

import "context"

// Repository provides remote access to analysis requests.
type Repository interface {
	List(ctx context.Context) ([]AnalysisRequest, error)
	Get(ctx context.Context, code string) (*AnalysisRequest, error)
	ListByRequester(ctx context.Context, cnpj string) ([]AnalysisRequest, error)
	Create(ctx context.Context, r *AnalysisRequest) error
}
