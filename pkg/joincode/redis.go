package joincode

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "cheat:code:"

// RedisConfig holds configuration for the Redis store
type RedisConfig struct {
	// RedisClient is required
	RedisClient *redis.Client

	// KeyPrefix defaults to cheat:code:
	KeyPrefix string
}

// RedisStore shares reservations between server processes
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a new Redis-backed store
func NewRedis(cfg *RedisConfig) (*RedisStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &RedisStore{
		client: cfg.RedisClient,
		prefix: prefix,
	}, nil
}

// Reserve claims the code with SETNX
func (r *RedisStore) Reserve(ctx context.Context, code string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+code, 1, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve code: %w", err)
	}

	return ok, nil
}

// Release deletes the reservation
func (r *RedisStore) Release(ctx context.Context, code string) error {
	if err := r.client.Del(ctx, r.prefix+code).Err(); err != nil {
		return fmt.Errorf("failed to release code: %w", err)
	}

	return nil
}
