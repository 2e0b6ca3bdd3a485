package request_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreate() request.CreateRequest {
	return request.CreateRequest{
		ProjectName:   "Estabilidade lote 7",
		AnalysisType:  "Estabilidade",
		Deadline:      "2025-03-31",
		DeliveryMode:  "virtual",
		RequesterCNPJ: "12345678000199",
	}
}

func TestRequestService_CreateAssemblesNestedRequester(t *testing.T) {
	ctx := context.Background()

	var sent *request.AnalysisRequest
	repo := &mocks.RequestRepository{}
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*request.AnalysisRequest)
	}).Return(nil)

	_, err := request.NewService(repo, nil).Create(ctx, validCreate())
	require.NoError(t, err)
	require.Equal(t, "VIRTUAL", sent.DeliveryMode)

	body, err := json.Marshal(sent)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	nested := decoded["solicitante"].(map[string]any)
	require.Equal(t, "12345678000199", nested["cnpj"])
	require.Equal(t, "", nested["nome"])
}

func TestRequestService_CreateValidation(t *testing.T) {
	cases := map[string]func(*request.CreateRequest){
		"nomeProjeto":        func(r *request.CreateRequest) { r.ProjectName = "" },
		"tipoAnalise":        func(r *request.CreateRequest) { r.AnalysisType = "Astrologia" },
		"prazoAcordado":      func(r *request.CreateRequest) { r.Deadline = "31/03/2025" },
		"modoEnvioResultado": func(r *request.CreateRequest) { r.DeliveryMode = "POMBO" },
		"solicitante":        func(r *request.CreateRequest) { r.RequesterCNPJ = "123" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := validCreate()
			mutate(&req)
			repo := &mocks.RequestRepository{}
			_, err := request.NewService(repo, nil).Create(context.Background(), req)
			require.ErrorIs(t, err, request.ErrInvalidInput)
			var fe *form.Errors
			require.ErrorAs(t, err, &fe)
			require.True(t, fe.Has(field))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRequestService_GetNormalizesCode(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RequestRepository{}
	repo.On("Get", ctx, "SA00012024").Return(&request.AnalysisRequest{Code: "SA00012024"}, nil)
	repo.On("Get", ctx, "SA00022024").Return((*request.AnalysisRequest)(nil), repository.ErrNotFound)

	svc := request.NewService(repo, nil)
	r, err := svc.Get(ctx, " sa00012024")
	require.NoError(t, err)
	require.Equal(t, "SA00012024", r.Code)

	_, err = svc.Get(ctx, "SA00022024")
	require.ErrorIs(t, err, request.ErrNotFound)

	_, err = svc.Get(ctx, "SA12")
	require.ErrorIs(t, err, request.ErrInvalidInput)
}

func TestRequestService_ListByRequesterNotFoundIsEmpty(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RequestRepository{}
	repo.On("ListByRequester", ctx, "12345678000199").Return(nil, repository.ErrNotFound)

	list, err := request.NewService(repo, nil).ListByRequester(ctx, "12345678000199")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCodes(t *testing.T) {
	require.Equal(t, "SA00072024", request.FormatCode(7, 2024))
	seq, year, ok := request.SplitCode("SA00072024")
	require.True(t, ok)
	require.Equal(t, "0007", seq)
	require.Equal(t, "2024", year)
	_, _, ok = request.SplitCode("XX00072024")
	require.False(t, ok)
}

func TestCompletionLabel(t *testing.T) {
	require.Equal(t, request.CompletionPending, request.AnalysisRequest{}.CompletionLabel())
	require.Equal(t, "2024-05-01", request.AnalysisRequest{Completion: "2024-05-01"}.CompletionLabel())
}
