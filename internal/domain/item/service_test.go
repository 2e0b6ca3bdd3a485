package item_test

import (
	"context"
	"testing"

	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/jsonx"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestItemService_CreateCoercesQuantity(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ItemRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(it *item.Item) bool {
		return it.Quantity == 25 && it.RequestID == jsonx.ID("3")
	})).Return(nil)

	it, err := item.NewService(repo, nil).Create(ctx, item.CreateRequest{
		Quantity:     "25",
		Unit:         "kg",
		MaterialType: "Comprimido",
		RequestID:    "3",
	})
	require.NoError(t, err)
	require.Equal(t, item.NoNote, it.NoteLabel())
	repo.AssertExpectations(t)
}

func TestItemService_CreateRejectsNonNumericQuantity(t *testing.T) {
	repo := &mocks.ItemRepository{}
	_, err := item.NewService(repo, nil).Create(context.Background(), item.CreateRequest{
		Quantity:     "vinte",
		Unit:         "kg",
		MaterialType: "Comprimido",
	})
	require.ErrorIs(t, err, item.ErrInvalidInput)
	var fe *form.Errors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, form.MsgInteger, fe.Field("quantidade"))
	require.Equal(t, form.MsgRequired, fe.Field("solicitacaoDeAnaliseId"))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestItemService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ItemRepository{}
	repo.On("Get", ctx, jsonx.ID("99")).Return((*item.Item)(nil), repository.ErrNotFound)

	_, err := item.NewService(repo, nil).Get(ctx, "99")
	require.ErrorIs(t, err, item.ErrNotFound)
}

func TestItemService_ItemIDs(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ItemRepository{}
	repo.On("List", ctx).Return([]item.Item{{ID: "1"}, {ID: "2"}}, nil)

	ids, err := item.NewService(repo, nil).ItemIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []jsonx.ID{"1", "2"}, ids)
}
