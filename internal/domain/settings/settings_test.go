package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/unolims/internal/domain/settings"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLanguage_DefaultWhenUnset(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	repo.On("Get", ctx, settings.LanguageKey).Return("", repository.ErrNotFound)

	lang, err := settings.NewService(repo, nil).Language(ctx)
	require.NoError(t, err)
	require.Equal(t, i18n.Default, lang)
}

func TestLanguage_UnsupportedStoredValue(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	repo.On("Get", ctx, settings.LanguageKey).Return("klingon", nil)

	lang, err := settings.NewService(repo, nil).Language(ctx)
	require.NoError(t, err)
	require.Equal(t, i18n.Default, lang)
}

func TestSetLanguage(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	repo.On("Set", ctx, settings.LanguageKey, "english").Return(nil)

	svc := settings.NewService(repo, nil)
	lang, err := svc.SetLanguage(ctx, "en-US")
	require.NoError(t, err)
	require.Equal(t, i18n.English, lang)

	_, err = svc.SetLanguage(ctx, "zz-invalid-tag!")
	require.ErrorIs(t, err, settings.ErrInvalidInput)
	repo.AssertNumberOfCalls(t, "Set", 1)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	repo.On("Get", ctx, settings.LanguageKey).Return("portuguese", nil)
	repo.On("Set", ctx, settings.LanguageKey, "english").Return(nil)

	lang, err := settings.NewService(repo, nil).Toggle(ctx)
	require.NoError(t, err)
	require.Equal(t, i18n.English, lang)
}

func TestCatalog_StoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PreferenceRepository{}
	repo.On("Get", ctx, mock.Anything).Return("", errors.New("disk full"))

	cat, err := settings.NewService(repo, nil).Catalog(ctx)
	require.Error(t, err)
	require.Equal(t, i18n.Default, cat.Language())
}
