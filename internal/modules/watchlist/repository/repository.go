package repository

import (
	"context"

	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/domain"
)

// Repository persists the whole watchlist document, keyed by user ID.
// The document is loaded and saved wholesale; the store underneath is
// a plain key-value store with last-writer-wins semantics.
type Repository interface {
	Load(ctx context.Context) (map[string]*domain.Watchlist, error)
	Save(ctx context.Context, data map[string]*domain.Watchlist) error
}
