package assay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/unolims/internal/domain/assay"
	"github.com/ganot/unolims/internal/jsonx"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type itemIDs []jsonx.ID

func (ids itemIDs) ItemIDs(context.Context) ([]jsonx.ID, error) { return ids, nil }

type failingItems struct{ err error }

func (f failingItems) ItemIDs(context.Context) ([]jsonx.ID, error) { return nil, f.err }

func TestAssayService_ListAcrossItemsDropsFailures(t *testing.T) {
	repo := &mocks.AssayRepository{}
	repo.On("ListByItem", mock.Anything, jsonx.ID("1")).Return([]assay.Assay{{Name: "pH", ItemID: "1"}}, nil)
	repo.On("ListByItem", mock.Anything, jsonx.ID("2")).Return(nil, errors.New("connection reset"))
	repo.On("ListByItem", mock.Anything, jsonx.ID("3")).Return([]assay.Assay{{Name: "Dureza", ItemID: "3"}, {Name: "Umidade", ItemID: "3"}}, nil)
	repo.On("ListByItem", mock.Anything, jsonx.ID("4")).Return(nil, repository.ErrNotFound)

	svc := assay.NewService(repo, itemIDs{"1", "2", "3", "4"}, 2, nil)
	listing, err := svc.ListAcrossItems(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, listing.Items)
	require.True(t, listing.Partial())
	require.Equal(t, []jsonx.ID{"2"}, listing.FailedItems)

	names := make([]string, 0, len(listing.Assays))
	for _, a := range listing.Assays {
		names = append(names, a.Name)
	}
	require.Equal(t, []string{"pH", "Dureza", "Umidade"}, names)
}

func TestAssayService_ListAcrossItemsAllFail(t *testing.T) {
	repo := &mocks.AssayRepository{}
	repo.On("ListByItem", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	svc := assay.NewService(repo, itemIDs{"1", "2"}, 0, nil)
	listing, err := svc.ListAcrossItems(context.Background())
	require.NoError(t, err)
	require.Empty(t, listing.Assays)
	require.NotNil(t, listing.Assays)
	require.Len(t, listing.FailedItems, 2)
	require.True(t, listing.AllFailed())
}

func TestAssayService_ListAcrossNoItems(t *testing.T) {
	svc := assay.NewService(&mocks.AssayRepository{}, itemIDs{}, 0, nil)
	listing, err := svc.ListAcrossItems(context.Background())
	require.NoError(t, err)
	require.Empty(t, listing.Assays)
	require.False(t, listing.Partial())
}

func TestAssayService_ListAcrossItemListFails(t *testing.T) {
	svc := assay.NewService(&mocks.AssayRepository{}, failingItems{err: repository.ErrUnavailable}, 0, nil)
	_, err := svc.ListAcrossItems(context.Background())
	require.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestAssayService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.AssayRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := assay.NewService(repo, itemIDs{}, 0, nil)
	_, err := svc.Create(ctx, assay.CreateRequest{Name: "pH"})
	require.ErrorIs(t, err, assay.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	a, err := svc.Create(ctx, assay.CreateRequest{Name: "pH", Specification: "6.5 - 7.5", ItemID: "4"})
	require.NoError(t, err)
	require.Equal(t, jsonx.ID("4"), a.ItemID)
}

func TestStandardNames(t *testing.T) {
	require.Len(t, assay.StandardNames, 13)
}
