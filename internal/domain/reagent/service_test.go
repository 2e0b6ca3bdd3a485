package reagent_test

import (
	"context"
	"testing"

	"github.com/ganot/unolims/internal/domain/reagent"
	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReagentService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ReagentRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(r *reagent.Reagent) bool {
		return r.Quantity == 2.5 && r.Stock.Name == "Geladeira 2" && r.Stock.Requester != nil
	})).Return(nil)

	_, err := reagent.NewService(repo, nil).Create(ctx, reagent.CreateRequest{
		StockName:  "Geladeira 2",
		Name:       "Acetonitrila",
		ExpiryDate: "2026-01-31",
		Unit:       "L",
		Quantity:   "2.5",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReagentService_CreateValidation(t *testing.T) {
	repo := &mocks.ReagentRepository{}
	_, err := reagent.NewService(repo, nil).Create(context.Background(), reagent.CreateRequest{
		StockName:  "Geladeira 2",
		Name:       "Acetonitrila",
		ExpiryDate: "2026-02-30",
		Unit:       "L",
		Quantity:   "-1",
	})
	require.ErrorIs(t, err, reagent.ErrInvalidInput)
	var fe *form.Errors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, form.MsgDate, fe.Field("dataValidade"))
	require.Equal(t, form.MsgNumber, fe.Field("quantidade"))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReagentService_CreateRejectsNonFiniteQuantity(t *testing.T) {
	repo := &mocks.ReagentRepository{}
	svc := reagent.NewService(repo, nil)
	for _, qty := range []string{"NaN", "Inf", "infinity", "0x10"} {
		_, err := svc.Create(context.Background(), reagent.CreateRequest{
			StockName:  "Geladeira 2",
			Name:       "Acetonitrila",
			ExpiryDate: "2026-01-31",
			Unit:       "L",
			Quantity:   qty,
		})
		require.ErrorIs(t, err, reagent.ErrInvalidInput, qty)
		var fe *form.Errors
		require.ErrorAs(t, err, &fe)
		require.Equal(t, form.MsgNumber, fe.Field("quantidade"), qty)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReagentService_ListByStock(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ReagentRepository{}
	repo.On("ListByStock", ctx, "Geladeira 2").Return([]reagent.Reagent{{Name: "Metanol"}}, nil)

	list, err := reagent.NewService(repo, nil).ListByStock(ctx, "Geladeira 2")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
