package repository

import (
	"context"

	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/resolver/domain"
)

// Repository persists the channel cache document. Load never fails:
// a missing or unreadable document comes back as the never-valid
// default, and the resolver self-heals with a full refresh.
type Repository interface {
	Load(ctx context.Context) *domain.Cache
	Save(ctx context.Context, cache *domain.Cache) error
}
