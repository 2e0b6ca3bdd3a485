package remote_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/domain/account"
	"github.com/ganot/unolims/internal/domain/analysis"
	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/domain/stock"
	"github.com/ganot/unolims/internal/jsonx"
	"github.com/ganot/unolims/internal/remote"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/testserver"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*testserver.TestServer, *remote.Client) {
	t.Helper()
	ts := testserver.New(t)
	return ts, remote.New(config.APIConfig{BaseURL: ts.URL(), Timeout: 2 * time.Second}, nil)
}

func TestRequesterRepository(t *testing.T) {
	ctx := context.Background()
	ts, client := setup(t)
	repo := remote.NewRequesterRepository(client)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	created := &requester.Requester{CNPJ: "12345678000199", Name: "Acme", PostalCode: "01001000"}
	require.NoError(t, repo.Create(ctx, created))
	require.False(t, created.ID.IsZero())

	got, err := repo.Get(ctx, "12345678000199")
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Name)

	_, err = repo.Get(ctx, "00000000000000")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Create(ctx, &requester.Requester{CNPJ: "12345678000199"})
	msg, ok := repository.ServerMessage(err)
	require.True(t, ok)
	require.Equal(t, "Solicitante já cadastrado", msg)
	require.Len(t, ts.Requesters(), 1)
}

func TestRequestRepository(t *testing.T) {
	ctx := context.Background()
	ts, client := setup(t)
	ts.AddRequester(requester.Requester{CNPJ: "12345678000199", Name: "Acme"})
	repo := remote.NewRequestRepository(client)

	r := &request.AnalysisRequest{ProjectName: "P1", Requester: requester.Ref("12345678000199")}
	require.NoError(t, repo.Create(ctx, r))
	require.NotEmpty(t, r.Code)

	got, err := repo.Get(ctx, r.Code)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Requester.Name)

	byOwner, err := repo.ListByRequester(ctx, "12345678000199")
	require.NoError(t, err)
	require.Len(t, byOwner, 1)

	_, err = repo.Get(ctx, "SA99992000")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestItemAndAssayRepositories(t *testing.T) {
	ctx := context.Background()
	ts, client := setup(t)
	ts.AddRequester(requester.Requester{CNPJ: "12345678000199"})
	req := ts.AddRequest(request.AnalysisRequest{ProjectName: "P1"}, "12345678000199")
	items := remote.NewItemRepository(client)
	assays := remote.NewAssayRepository(client)

	it := &item.Item{Quantity: 5, Unit: "kg", MaterialType: "Pó", RequestID: req.ID}
	require.NoError(t, items.Create(ctx, it))
	require.NoError(t, assays.Create(ctx, &assay.Assay{Name: "pH", Specification: "7", ItemID: it.ID}))

	got, err := items.Get(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, req.Code, got.Request.Code)
	require.Len(t, got.Assays, 1)
	require.Equal(t, assay.StatusPending, got.Assays[0].Status)

	byItem, err := assays.ListByItem(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, byItem, 1)

	_, err = items.Get(ctx, jsonx.ID("404"))
	require.ErrorIs(t, err, repository.ErrNotFound)

	ts.AddProcedure("pH")
	procs, err := assays.ListProcedures(ctx)
	require.NoError(t, err)
	require.Len(t, procs, 1)
}

func TestBatchAndAnalysisRepositories(t *testing.T) {
	ctx := context.Background()
	ts, client := setup(t)
	ts.AddRequester(requester.Requester{CNPJ: "12345678000199"})
	req := ts.AddRequest(request.AnalysisRequest{ProjectName: "P1"}, "12345678000199")
	batches := remote.NewBatchRepository(client)
	analyses := remote.NewAnalysisRepository(client)

	b := &batch.Batch{Sample: "Amostra", Quantity: 3, Request: request.Ref(req.Code)}
	require.NoError(t, batches.Create(ctx, b))

	list, err := batches.ListByRequest(ctx, req.Code)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, analyses.Create(ctx, &analysis.Analysis{
		Specification: 7, Result: 6.9, Unit: "pH",
		Batch: batch.Ref(b.ID), Assay: &analysis.AssayRef{Name: "pH"},
	}))
	results, err := analyses.ListByBatch(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "pH", results[0].Label())
}

func TestStockRepositoryConflict(t *testing.T) {
	ctx := context.Background()
	ts, client := setup(t)
	ts.AddStock("Geladeira", "")
	repo := remote.NewStockRepository(client)

	err := repo.Create(ctx, stock.Ref("Geladeira"))
	var remoteErr *repository.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, http.StatusConflict, remoteErr.Status)
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	ts, client := setup(t)
	repo := remote.NewAccountRepository(client)

	reg := account.Registration{Name: "Ana", Role: "ADMIN", Email: "ana@lab.test", Password: "pw", PasswordConfirm: "pw"}
	require.NoError(t, repo.Register(ctx, reg))

	sess, err := repo.Login(ctx, account.Credentials{Email: "ana@lab.test", Password: "pw"})
	require.NoError(t, err)
	require.True(t, ts.ValidToken(sess.Token))
	exp, ok := sess.ExpiresAt()
	require.True(t, ok)
	require.True(t, exp.After(time.Now()))

	_, err = repo.Login(ctx, account.Credentials{Email: "ana@lab.test", Password: "nope"})
	var remoteErr *repository.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, http.StatusUnauthorized, remoteErr.Status)
}

func TestDashboardRepository(t *testing.T) {
	ctx := context.Background()
	ts, client := setup(t)
	ts.AddItem(item.Item{Quantity: 10})
	ts.AddAssay(assay.Assay{Name: "pH"})
	ts.AddAssay(assay.Assay{Name: "Dureza", Status: assay.StatusCompleted})

	sum, err := remote.NewDashboardRepository(client).Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, sum.Assays)
	require.Equal(t, 1, sum.Pending)
	require.Equal(t, 1, sum.Completed)
	require.InDelta(t, 10, sum.Items.Sum.Available, 1e-9)
}

func TestInjectedFailure(t *testing.T) {
	ts, client := setup(t)
	ts.Fail(http.MethodGet, "/estoque", http.StatusInternalServerError, "boom")

	_, err := remote.NewStockRepository(client).List(context.Background())
	msg, ok := repository.ServerMessage(err)
	require.True(t, ok)
	require.Equal(t, "boom", msg)
	require.Equal(t, 1, ts.Calls(http.MethodGet, "/estoque"))
}
