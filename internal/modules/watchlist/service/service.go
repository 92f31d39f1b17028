package service

import (
	"context"

	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/domain"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/repository"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
)

// Service owns the per-user watchlists: validation, the channel cap,
// and persistence through the repository. Every mutation is a full
// load-modify-save of the document, so a failed save leaves the stored
// state untouched.
type Service struct {
	repo repository.Repository
}

// New creates a watchlist service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Add puts name on userID's watchlist. It returns false with a nil
// error when the channel is already watched (idempotent no-op),
// errors.ErrInvalidChannelName for a malformed name, and
// errors.ErrWatchlistFull when the user is at the cap.
func (s *Service) Add(ctx context.Context, userID, name string) (bool, error) {
	if !domain.ValidChannelName(name) {
		return false, errors.ErrInvalidChannelName
	}

	watchlists, err := s.repo.Load(ctx)
	if err != nil {
		return false, err
	}

	entry, ok := watchlists[userID]
	if !ok {
		entry = &domain.Watchlist{}
		watchlists[userID] = entry
	}

	if entry.Contains(name) {
		return false, nil
	}
	if len(entry.Channels) >= domain.MaxChannels {
		return false, errors.ErrWatchlistFull
	}

	entry.Append(name)
	if err := s.repo.Save(ctx, watchlists); err != nil {
		return false, err
	}

	return true, nil
}

// Remove takes name off userID's watchlist. It returns false with a
// nil error when the channel was not watched.
func (s *Service) Remove(ctx context.Context, userID, name string) (bool, error) {
	watchlists, err := s.repo.Load(ctx)
	if err != nil {
		return false, err
	}

	entry, ok := watchlists[userID]
	if !ok || !entry.Remove(name) {
		return false, nil
	}

	if err := s.repo.Save(ctx, watchlists); err != nil {
		return false, err
	}

	return true, nil
}

// List returns userID's watched channels in insertion order, empty for
// an unknown user.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	watchlists, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	entry, ok := watchlists[userID]
	if !ok {
		return []string{}, nil
	}

	return entry.Channels, nil
}

// All returns every user's watchlist, for the batch stagnancy pass.
func (s *Service) All(ctx context.Context) (map[string]*domain.Watchlist, error) {
	return s.repo.Load(ctx)
}
