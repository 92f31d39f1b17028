package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/samber/oops"
)

// RedisStore implements Store on a Redis connection. Values are plain
// string keys with no expiry; last writer wins, which is acceptable
// for the cache document and the watchlist document alike.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using a redis:// URL.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, oops.With("context", "failed to parse redis url").Wrap(err)
	}

	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.ErrKeyNotFound
		}
		return nil, oops.With("key", key, "context", "failed to read key from redis").Wrap(err)
	}

	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return oops.With("key", key, "context", "failed to write key to redis").Wrap(err)
	}

	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
