package repository

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"log/slog"

	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/domain"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/kv"
	"github.com/samber/oops"
)

const userDataKey = "user_data"

// KVStorage implements Repository on top of the shared key-value
// store, holding all watchlists in a single JSON document.
type KVStorage struct {
	store kv.Store
}

// NewKVStorage creates a watchlist repository backed by store.
func NewKVStorage(store kv.Store) *KVStorage {
	return &KVStorage{store: store}
}

func (s *KVStorage) Load(ctx context.Context) (map[string]*domain.Watchlist, error) {
	data, err := s.store.Get(ctx, userDataKey)
	if err != nil {
		if goerrors.Is(err, errors.ErrKeyNotFound) {
			return map[string]*domain.Watchlist{}, nil
		}
		return nil, oops.With("key", userDataKey, "context", "failed to load watchlists").Wrap(err)
	}

	var watchlists map[string]*domain.Watchlist
	if err := json.Unmarshal(data, &watchlists); err != nil {
		// A corrupt document must never block the command surface;
		// readers fall back to the empty default.
		slog.Error("Corrupt watchlist document, using empty default", "key", userDataKey, "error", err)
		return map[string]*domain.Watchlist{}, nil
	}
	if watchlists == nil {
		watchlists = map[string]*domain.Watchlist{}
	}

	return watchlists, nil
}

func (s *KVStorage) Save(ctx context.Context, watchlists map[string]*domain.Watchlist) error {
	data, err := json.Marshal(watchlists)
	if err != nil {
		return oops.With("key", userDataKey, "context", "failed to marshal watchlists").Wrap(err)
	}

	if err := s.store.Set(ctx, userDataKey, data); err != nil {
		return oops.With("key", userDataKey, "context", "failed to save watchlists").Wrap(err)
	}

	return nil
}
