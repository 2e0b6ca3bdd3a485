package sqlite

import (
	"context"
	"testing"

	"github.com/ganot/unolims/internal/domain/settings"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepository_GetSet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "language")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "language", "english"))
	require.NoError(t, repo.Set(ctx, "language", "portuguese"))

	v, err := repo.Get(ctx, "language")
	require.NoError(t, err)
	require.Equal(t, "portuguese", v)
}

func TestPreferenceRepository_WithSettings(t *testing.T) {
	svc := settings.NewService(NewPreferenceRepository(NewTestDB(t)), nil)
	ctx := context.Background()

	lang, err := svc.Language(ctx)
	require.NoError(t, err)
	require.Equal(t, i18n.Portuguese, lang)

	lang, err = svc.Toggle(ctx)
	require.NoError(t, err)
	require.Equal(t, i18n.English, lang)

	lang, err = svc.Language(ctx)
	require.NoError(t, err)
	require.Equal(t, i18n.English, lang)
}
