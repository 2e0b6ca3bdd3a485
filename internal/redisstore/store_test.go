package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/domain/settings"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/repository"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *PreferenceRepository) {
	mr := miniredis.RunT(t)
	client := NewClient(config.PrefsConfig{RedisAddr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewPreferenceRepository(client, "lab")
}

func TestPreferenceRepository_GetSet(t *testing.T) {
	mr, repo := setupTestRedis(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "language")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "language", "english"))
	v, err := repo.Get(ctx, "language")
	require.NoError(t, err)
	require.Equal(t, "english", v)
	require.Equal(t, "english", mr.HGet("lab:prefs", "language"))
}

func TestPreferenceRepository_Unavailable(t *testing.T) {
	mr, repo := setupTestRedis(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "language")
	require.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestPreferenceRepository_SharedBetweenServices(t *testing.T) {
	mr, repo := setupTestRedis(t)
	other := NewPreferenceRepository(NewClient(config.PrefsConfig{RedisAddr: mr.Addr()}), "lab")
	ctx := context.Background()

	_, err := settings.NewService(repo, nil).SetLanguage(ctx, "en")
	require.NoError(t, err)

	lang, err := settings.NewService(other, nil).Language(ctx)
	require.NoError(t, err)
	require.Equal(t, i18n.English, lang)
}

func TestPing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(config.PrefsConfig{RedisAddr: mr.Addr()})
	require.NoError(t, Ping(context.Background(), client))
}
