package mocks

import (
	"context"

	"github.com/ganot/unolims/internal/domain/account"
	"github.com/ganot/unolims/internal/domain/analysis"
	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/domain/dashboard"
	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/domain/reagent"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/domain/stock"
	"github.com/ganot/unolims/internal/jsonx"
	"github.com/stretchr/testify/mock"
)

// RequesterRepository is a mock for requester.Repository.
type RequesterRepository struct {
	mock.Mock
}

func (m *RequesterRepository) List(ctx context.Context) ([]requester.Requester, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]requester.Requester); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequesterRepository) Get(ctx context.Context, cnpj string) (*requester.Requester, error) {
	args := m.Called(ctx, cnpj)
	if r, ok := args.Get(0).(*requester.Requester); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequesterRepository) Create(ctx context.Context, r *requester.Requester) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// RequestRepository is a mock for request.Repository.
type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) List(ctx context.Context) ([]request.AnalysisRequest, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]request.AnalysisRequest); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequestRepository) Get(ctx context.Context, code string) (*request.AnalysisRequest, error) {
	args := m.Called(ctx, code)
	if r, ok := args.Get(0).(*request.AnalysisRequest); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequestRepository) ListByRequester(ctx context.Context, cnpj string) ([]request.AnalysisRequest, error) {
	args := m.Called(ctx, cnpj)
	if list, ok := args.Get(0).([]request.AnalysisRequest); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RequestRepository) Create(ctx context.Context, r *request.AnalysisRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// ItemRepository is a mock for item.Repository.
type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) List(ctx context.Context) ([]item.Item, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]item.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) Get(ctx context.Context, id jsonx.ID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if it, ok := args.Get(0).(*item.Item); ok {
		return it, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

// AssayRepository is a mock for assay.Repository.
type AssayRepository struct {
	mock.Mock
}

func (m *AssayRepository) List(ctx context.Context) ([]assay.Assay, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]assay.Assay); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AssayRepository) ListByItem(ctx context.Context, itemID jsonx.ID) ([]assay.Assay, error) {
	args := m.Called(ctx, itemID)
	if list, ok := args.Get(0).([]assay.Assay); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AssayRepository) ListProcedures(ctx context.Context) ([]assay.Procedure, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]assay.Procedure); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AssayRepository) Create(ctx context.Context, a *assay.Assay) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// BatchRepository is a mock for batch.Repository.
type BatchRepository struct {
	mock.Mock
}

func (m *BatchRepository) Get(ctx context.Context, id jsonx.ID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*batch.Batch); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BatchRepository) ListByRequest(ctx context.Context, code string) ([]batch.Batch, error) {
	args := m.Called(ctx, code)
	if list, ok := args.Get(0).([]batch.Batch); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BatchRepository) Create(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

// AnalysisRepository is a mock for analysis.Repository.
type AnalysisRepository struct {
	mock.Mock
}

func (m *AnalysisRepository) ListByBatch(ctx context.Context, batchID jsonx.ID) ([]analysis.Analysis, error) {
	args := m.Called(ctx, batchID)
	if list, ok := args.Get(0).([]analysis.Analysis); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalysisRepository) Create(ctx context.Context, a *analysis.Analysis) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// StockRepository is a mock for stock.Repository.
type StockRepository struct {
	mock.Mock
}

func (m *StockRepository) List(ctx context.Context) ([]stock.Stock, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]stock.Stock); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StockRepository) Create(ctx context.Context, s *stock.Stock) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// ReagentRepository is a mock for reagent.Repository.
type ReagentRepository struct {
	mock.Mock
}

func (m *ReagentRepository) ListByStock(ctx context.Context, stockName string) ([]reagent.Reagent, error) {
	args := m.Called(ctx, stockName)
	if list, ok := args.Get(0).([]reagent.Reagent); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReagentRepository) Create(ctx context.Context, r *reagent.Reagent) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// DashboardRepository is a mock for dashboard.Repository.
type DashboardRepository struct {
	mock.Mock
}

func (m *DashboardRepository) Get(ctx context.Context) (*dashboard.Summary, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*dashboard.Summary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// AccountRepository is a mock for account.Repository.
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Login(ctx context.Context, creds account.Credentials) (*account.Session, error) {
	args := m.Called(ctx, creds)
	if s, ok := args.Get(0).(*account.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) Register(ctx context.Context, reg account.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

// PreferenceRepository is a mock for settings.PreferenceRepository.
type PreferenceRepository struct {
	mock.Mock
}

func (m *PreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
