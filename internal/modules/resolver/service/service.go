package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/resolver/domain"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/resolver/repository"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/slackapi"
	"github.com/samber/lo"
)

// ChannelLister is the slice of the Slack API the resolver consumes.
type ChannelLister interface {
	ListChannels(ctx context.Context) ([]slackapi.Channel, error)
}

// Service resolves channel names to IDs through the persisted cache.
// Steady state costs zero API calls; a miss against a valid cache does
// one full listing and backfills the single mapping; an expired cache
// triggers a wholesale refresh.
type Service struct {
	repo  repository.Repository
	slack ChannelLister
}

// New creates a channel resolver.
func New(repo repository.Repository, slack ChannelLister) *Service {
	return &Service{repo: repo, slack: slack}
}

// Resolve returns the channel ID for name, or errors.ErrChannelNotFound
// when the name cannot be mapped. Listing failures are logged and
// reported as not-found; they never propagate out of the resolver.
func (s *Service) Resolve(ctx context.Context, name string) (string, error) {
	cache := s.repo.Load(ctx)

	switch domain.Plan(cache, name, time.Now()) {
	case domain.CacheStateFresh:
		return cache.Channels[name], nil

	case domain.CacheStateStaleMiss:
		return s.lookupAndBackfill(ctx, cache, name)

	default: // domain.CacheStateExpired
		return s.refreshAndResolve(ctx, name)
	}
}

// lookupAndBackfill scans a full listing for one name and, on a hit,
// adds just that mapping. LastUpdated is deliberately left alone: a
// single-entry add must not extend the validity of the whole cache.
func (s *Service) lookupAndBackfill(ctx context.Context, cache *domain.Cache, name string) (string, error) {
	channels, err := s.slack.ListChannels(ctx)
	if err != nil {
		slog.Error("Channel lookup failed", "channel", name, "error", err)
		return "", errors.ErrChannelNotFound
	}

	match, found := lo.Find(channels, func(ch slackapi.Channel) bool {
		return ch.Name == name
	})
	if !found {
		return "", errors.ErrChannelNotFound
	}

	cache.Channels[name] = match.ID
	if err := s.repo.Save(ctx, cache); err != nil {
		slog.Error("Failed to persist cache backfill", "channel", name, "error", err)
	}

	return match.ID, nil
}

// refreshAndResolve replaces the whole cache from a fresh listing and
// answers the lookup from the new map.
func (s *Service) refreshAndResolve(ctx context.Context, name string) (string, error) {
	channels, err := s.slack.ListChannels(ctx)
	if err != nil {
		slog.Error("Channel cache refresh failed", "channel", name, "error", err)
		return "", errors.ErrChannelNotFound
	}

	now := time.Now()
	cache := &domain.Cache{
		Channels: lo.Associate(channels, func(ch slackapi.Channel) (string, string) {
			return ch.Name, ch.ID
		}),
		LastUpdated: &now,
	}

	if err := s.repo.Save(ctx, cache); err != nil {
		slog.Error("Failed to persist refreshed cache", "error", err)
	}

	id, ok := cache.Channels[name]
	if !ok {
		return "", errors.ErrChannelNotFound
	}

	return id, nil
}
