package repository

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"log/slog"

	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/resolver/domain"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/kv"
	"github.com/samber/oops"
)

const cacheKey = "channel_cache"

// KVStorage implements Repository on top of the shared key-value store.
type KVStorage struct {
	store kv.Store
}

// NewKVStorage creates a channel cache repository backed by store.
func NewKVStorage(store kv.Store) *KVStorage {
	return &KVStorage{store: store}
}

func (s *KVStorage) Load(ctx context.Context) *domain.Cache {
	data, err := s.store.Get(ctx, cacheKey)
	if err != nil {
		if !goerrors.Is(err, errors.ErrKeyNotFound) {
			slog.Error("Failed to load channel cache, using empty default", "key", cacheKey, "error", err)
		}
		return domain.Empty()
	}

	var cache domain.Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		slog.Error("Corrupt channel cache document, using empty default", "key", cacheKey, "error", err)
		return domain.Empty()
	}
	if cache.Channels == nil {
		cache.Channels = map[string]string{}
	}

	return &cache
}

func (s *KVStorage) Save(ctx context.Context, cache *domain.Cache) error {
	data, err := json.Marshal(cache)
	if err != nil {
		return oops.With("key", cacheKey, "context", "failed to marshal channel cache").Wrap(err)
	}

	if err := s.store.Set(ctx, cacheKey, data); err != nil {
		return oops.With("key", cacheKey, "context", "failed to save channel cache").Wrap(err)
	}

	return nil
}
