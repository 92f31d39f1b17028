package service

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/kv"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const (
	historyKey   = "report_history"
	historyLimit = 50
)

// RunSummary records one stagnancy pass: counters only, no per-user
// data, so the ops feed can be exposed without leaking watchlists.
type RunSummary struct {
	StartedAt     time.Time `json:"started_at"`
	UsersChecked  int       `json:"users_checked"`
	UsersNotified int       `json:"users_notified"`
	StagnantTotal int       `json:"stagnant_total"`
}

// Service keeps the rolling history of stagnancy runs and renders it
// as an RSS feed.
type Service struct {
	store kv.Store
}

// New creates a report service backed by store.
func New(store kv.Store) *Service {
	return &Service{store: store}
}

// AppendRun adds summary to the history, trimming to the newest
// historyLimit entries.
func (s *Service) AppendRun(ctx context.Context, summary RunSummary) error {
	history, err := s.History(ctx)
	if err != nil {
		return err
	}

	history = append(history, summary)
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return oops.With("key", historyKey, "context", "failed to marshal run history").Wrap(err)
	}

	if err := s.store.Set(ctx, historyKey, data); err != nil {
		return oops.With("key", historyKey, "context", "failed to save run history").Wrap(err)
	}

	return nil
}

// History returns recorded run summaries, oldest first.
func (s *Service) History(ctx context.Context) ([]RunSummary, error) {
	data, err := s.store.Get(ctx, historyKey)
	if err != nil {
		if goerrors.Is(err, errors.ErrKeyNotFound) {
			return []RunSummary{}, nil
		}
		return nil, oops.With("key", historyKey, "context", "failed to load run history").Wrap(err)
	}

	var history []RunSummary
	if err := json.Unmarshal(data, &history); err != nil {
		slog.Error("Corrupt run history document, starting fresh", "key", historyKey, "error", err)
		return []RunSummary{}, nil
	}

	return history, nil
}

// Feed renders the run history as an RSS feed, newest first.
func (s *Service) Feed(ctx context.Context, baseURL string) (*feeds.Feed, error) {
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       "Stagnant Channel Watch - Run History",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/feed/runs", baseURL)},
		Description: "Summaries of periodic stagnant-channel checks",
		Updated:     time.Now(),
	}

	items := lo.Map(history, func(run RunSummary, _ int) *feeds.Item {
		return &feeds.Item{
			Id:    run.StartedAt.UTC().Format(time.RFC3339),
			Title: fmt.Sprintf("Check at %s", run.StartedAt.Format("2006-01-02 15:04")),
			Link:  &feeds.Link{Href: fmt.Sprintf("%s/feed/runs", baseURL)},
			Description: fmt.Sprintf("%d users checked, %d notified, %d stagnant channels found",
				run.UsersChecked, run.UsersNotified, run.StagnantTotal),
			Created: run.StartedAt,
		}
	})

	// Newest first
	feed.Items = lo.Reverse(items)
	return feed, nil
}
