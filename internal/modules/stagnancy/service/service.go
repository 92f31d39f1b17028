package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	reportService "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/report/service"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/modules/stagnancy/domain"
	watchlistDomain "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/domain"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/config"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/slackapi"
	"github.com/samber/lo"
)

// WatchlistProvider supplies every user's watchlist for a batch pass.
type WatchlistProvider interface {
	All(ctx context.Context) (map[string]*watchlistDomain.Watchlist, error)
}

// Resolver maps a channel name to its ID.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// Messenger is the slice of the Slack API the checker consumes.
type Messenger interface {
	LatestMessage(ctx context.Context, channelID string) (*slackapi.Message, error)
	SendDirectMessage(ctx context.Context, userID, text string) error
}

// Service runs the periodic stagnancy check: for every user with a
// non-empty watchlist it resolves each channel, classifies the latest
// message, and sends exactly one DM with the result.
type Service struct {
	cfg        *config.Config
	watchlists WatchlistProvider
	resolver   Resolver
	slack      Messenger
	reports    *reportService.Service
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New creates a stagnancy checker.
func New(cfg *config.Config, watchlists WatchlistProvider, resolver Resolver, slack Messenger, reports *reportService.Service) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		cfg:        cfg,
		watchlists: watchlists,
		resolver:   resolver,
		slack:      slack,
		reports:    reports,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins the periodic check loop.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.checkLoop()
}

// Stop stops the loop and waits for an in-flight pass to finish.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Service) checkLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Duration(s.cfg.CheckIntervalHours) * time.Hour)
	defer ticker.Stop()

	// The first pass waits a full interval so a restart does not
	// re-send reports users already received.
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunCheck(s.ctx); err != nil {
				slog.Error("Stagnancy check failed", "error", err)
			}
		}
	}
}

// RunCheck performs one full stagnancy pass. One user's or channel's
// failure degrades that user's report but never aborts the run.
func (s *Service) RunCheck(ctx context.Context) error {
	slog.Info("Running stagnant channel check")
	summary := reportService.RunSummary{StartedAt: time.Now()}

	watchlists, err := s.watchlists.All(ctx)
	if err != nil {
		slog.Error("Failed to load watchlists", "error", err)
		return err
	}

	// Stable iteration order keeps runs reproducible in the logs.
	userIDs := lo.Keys(watchlists)
	sort.Strings(userIDs)

	for _, userID := range userIDs {
		entry := watchlists[userID]
		if entry == nil || len(entry.Channels) == 0 {
			continue
		}
		summary.UsersChecked++

		stagnant := s.evaluateUser(ctx, userID, entry.Channels)
		summary.StagnantTotal += len(stagnant)

		if err := s.slack.SendDirectMessage(ctx, userID, reportText(stagnant)); err != nil {
			slog.Error("Failed to send report", "user_id", userID, "error", err)
			continue
		}
		summary.UsersNotified++
	}

	if err := s.reports.AppendRun(ctx, summary); err != nil {
		slog.Error("Failed to record run summary", "error", err)
	}

	slog.Info("Stagnant channel check done",
		"users_checked", summary.UsersChecked,
		"users_notified", summary.UsersNotified,
		"stagnant_total", summary.StagnantTotal)
	return nil
}

// evaluateUser classifies every watched channel, returning the
// stagnant names in watchlist order. Unresolvable channels and fetch
// failures are skipped, excluded from both sets.
func (s *Service) evaluateUser(ctx context.Context, userID string, channels []string) []string {
	var stagnant []string

	for _, name := range channels {
		channelID, err := s.resolver.Resolve(ctx, name)
		if err != nil {
			slog.Warn("Skipping unresolvable channel", "user_id", userID, "channel", name)
			continue
		}

		msg, err := s.slack.LatestMessage(ctx, channelID)
		if err != nil {
			slog.Error("Skipping channel, history fetch failed", "user_id", userID, "channel", name, "error", err)
			continue
		}
		if msg == nil {
			// A channel with no messages at all is not a signal.
			continue
		}

		snapshot := domain.Snapshot{Timestamp: msg.Timestamp, ReplyCount: msg.ReplyCount}
		if snapshot.Stagnant(time.Now()) {
			stagnant = append(stagnant, name)
		}
	}

	return stagnant
}

func reportText(stagnant []string) string {
	if len(stagnant) == 0 {
		return "✅ All your monitored channels are active."
	}

	lines := lo.Map(stagnant, func(name string, _ int) string {
		return "• #" + name
	})
	return "⚠️ *Your stagnant channels:*\n" + strings.Join(lines, "\n")
}
