// Package redisstore keeps preferences in Redis for server deployments where
// several processes share one language setting.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/repository"
	"github.com/go-redis/redis/v8"
)

// NewClient creates a Redis client from the preference settings.
func NewClient(cfg config.PrefsConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// Ping checks the connection.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

// PreferenceRepository implements settings.PreferenceRepository as one Redis hash.
type PreferenceRepository struct {
	c   *redis.Client
	key string
}

// NewPreferenceRepository stores preferences in the hash "<prefix>:prefs".
func NewPreferenceRepository(c *redis.Client, prefix string) *PreferenceRepository {
	if prefix == "" {
		prefix = "unolims"
	}
	return &PreferenceRepository{c: c, key: prefix + ":prefs"}
}

func (r *PreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.c.HGet(ctx, r.key, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("%w: reading preference %s: %w", repository.ErrUnavailable, key, err)
	}
	return val, nil
}

func (r *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	if err := r.c.HSet(ctx, r.key, key, value).Err(); err != nil {
		return fmt.Errorf("%w: saving preference %s: %w", repository.ErrUnavailable, key, err)
	}
	return nil
}
