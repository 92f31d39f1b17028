package service

import (
	"context"
	goerrors "errors"
	"strings"
	"testing"
	"time"

	reportService "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/report/service"
	watchlistDomain "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/domain"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/config"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/kv"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/slackapi"
)

type fakeWatchlists struct {
	data map[string]*watchlistDomain.Watchlist
	err  error
}

func (f *fakeWatchlists) All(ctx context.Context) (map[string]*watchlistDomain.Watchlist, error) {
	return f.data, f.err
}

type fakeResolver struct {
	ids map[string]string
}

func (f *fakeResolver) Resolve(ctx context.Context, name string) (string, error) {
	id, ok := f.ids[name]
	if !ok {
		return "", errors.ErrChannelNotFound
	}
	return id, nil
}

type fakeMessenger struct {
	messages  map[string]*slackapi.Message
	fetchErrs map[string]error
	sendErrs  map[string]error
	sent      map[string]string
}

func (f *fakeMessenger) LatestMessage(ctx context.Context, channelID string) (*slackapi.Message, error) {
	if err, ok := f.fetchErrs[channelID]; ok {
		return nil, err
	}
	return f.messages[channelID], nil
}

func (f *fakeMessenger) SendDirectMessage(ctx context.Context, userID, text string) error {
	if err, ok := f.sendErrs[userID]; ok {
		return err
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[userID] = text
	return nil
}

func newTestChecker(t *testing.T, watchlists *fakeWatchlists, resolver *fakeResolver, messenger *fakeMessenger) *Service {
	t.Helper()
	store, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	cfg := &config.Config{CheckIntervalHours: 24}
	return New(cfg, watchlists, resolver, messenger, reportService.New(store))
}

func messageAged(age time.Duration, replyCount int) *slackapi.Message {
	return &slackapi.Message{Timestamp: time.Now().Add(-age), ReplyCount: replyCount}
}

func TestRunCheckReportsOnlyStagnantChannels(t *testing.T) {
	watchlists := &fakeWatchlists{data: map[string]*watchlistDomain.Watchlist{
		"U1": {Channels: []string{"eng", "random"}},
	}}
	resolver := &fakeResolver{ids: map[string]string{"eng": "C-eng", "random": "C-random"}}
	messenger := &fakeMessenger{messages: map[string]*slackapi.Message{
		"C-eng":    messageAged(72*time.Hour, 0),
		"C-random": messageAged(time.Hour, 0),
	}}

	checker := newTestChecker(t, watchlists, resolver, messenger)
	if err := checker.RunCheck(context.Background()); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	text, ok := messenger.sent["U1"]
	if !ok {
		t.Fatal("expected a DM for U1")
	}
	if !strings.HasPrefix(text, "⚠️") {
		t.Errorf("report not warning-prefixed: %q", text)
	}
	if !strings.Contains(text, "#eng") {
		t.Errorf("report missing stagnant channel: %q", text)
	}
	if strings.Contains(text, "#random") {
		t.Errorf("report includes active channel: %q", text)
	}
}

func TestRunCheckSkipsUsersWithNoChannels(t *testing.T) {
	watchlists := &fakeWatchlists{data: map[string]*watchlistDomain.Watchlist{
		"U1": {Channels: []string{"eng"}},
		"U2": {Channels: []string{}},
	}}
	resolver := &fakeResolver{ids: map[string]string{"eng": "C-eng"}}
	messenger := &fakeMessenger{messages: map[string]*slackapi.Message{
		"C-eng": messageAged(time.Hour, 0),
	}}

	checker := newTestChecker(t, watchlists, resolver, messenger)
	if err := checker.RunCheck(context.Background()); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	if _, ok := messenger.sent["U2"]; ok {
		t.Error("no DM may be sent to a user with an empty watchlist")
	}
	if len(messenger.sent) != 1 {
		t.Errorf("expected exactly one DM, got %d", len(messenger.sent))
	}
}

func TestRunCheckAllClearMessage(t *testing.T) {
	watchlists := &fakeWatchlists{data: map[string]*watchlistDomain.Watchlist{
		"U1": {Channels: []string{"eng"}},
	}}
	resolver := &fakeResolver{ids: map[string]string{"eng": "C-eng"}}
	messenger := &fakeMessenger{messages: map[string]*slackapi.Message{
		"C-eng": messageAged(time.Hour, 0),
	}}

	checker := newTestChecker(t, watchlists, resolver, messenger)
	if err := checker.RunCheck(context.Background()); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	if text := messenger.sent["U1"]; !strings.HasPrefix(text, "✅") {
		t.Errorf("expected all-clear DM, got %q", text)
	}
}

func TestRunCheckRepliesSuppressStagnancy(t *testing.T) {
	watchlists := &fakeWatchlists{data: map[string]*watchlistDomain.Watchlist{
		"U1": {Channels: []string{"eng"}},
	}}
	resolver := &fakeResolver{ids: map[string]string{"eng": "C-eng"}}
	messenger := &fakeMessenger{messages: map[string]*slackapi.Message{
		"C-eng": messageAged(120*time.Hour, 5),
	}}

	checker := newTestChecker(t, watchlists, resolver, messenger)
	if err := checker.RunCheck(context.Background()); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	if text := messenger.sent["U1"]; !strings.HasPrefix(text, "✅") {
		t.Errorf("a channel with replies must never be reported stagnant, got %q", text)
	}
}

func TestRunCheckEmptyChannelIsNotStagnant(t *testing.T) {
	watchlists := &fakeWatchlists{data: map[string]*watchlistDomain.Watchlist{
		"U1": {Channels: []string{"quiet"}},
	}}
	resolver := &fakeResolver{ids: map[string]string{"quiet": "C-quiet"}}
	// No message entry at all: LatestMessage returns nil, nil.
	messenger := &fakeMessenger{messages: map[string]*slackapi.Message{}}

	checker := newTestChecker(t, watchlists, resolver, messenger)
	if err := checker.RunCheck(context.Background()); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	if text := messenger.sent["U1"]; !strings.HasPrefix(text, "✅") {
		t.Errorf("a channel with no messages must not be stagnant, got %q", text)
	}
}

func TestRunCheckContainsPerChannelFailures(t *testing.T) {
	watchlists := &fakeWatchlists{data: map[string]*watchlistDomain.Watchlist{
		"U1": {Channels: []string{"broken", "eng"}},
	}}
	resolver := &fakeResolver{ids: map[string]string{"broken": "C-broken", "eng": "C-eng"}}
	messenger := &fakeMessenger{
		messages:  map[string]*slackapi.Message{"C-eng": messageAged(72*time.Hour, 0)},
		fetchErrs: map[string]error{"C-broken": goerrors.New("slack 500")},
	}

	checker := newTestChecker(t, watchlists, resolver, messenger)
	if err := checker.RunCheck(context.Background()); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	text := messenger.sent["U1"]
	if !strings.Contains(text, "#eng") {
		t.Errorf("healthy channel must still be evaluated: %q", text)
	}
	if strings.Contains(text, "#broken") {
		t.Errorf("failed channel must be excluded from the report: %q", text)
	}
}

func TestRunCheckOneUsersFailureDoesNotAbortOthers(t *testing.T) {
	watchlists := &fakeWatchlists{data: map[string]*watchlistDomain.Watchlist{
		"U1": {Channels: []string{"eng"}},
		"U2": {Channels: []string{"eng"}},
	}}
	resolver := &fakeResolver{ids: map[string]string{"eng": "C-eng"}}
	messenger := &fakeMessenger{
		messages: map[string]*slackapi.Message{"C-eng": messageAged(time.Hour, 0)},
		sendErrs: map[string]error{"U1": goerrors.New("dm failed")},
	}

	checker := newTestChecker(t, watchlists, resolver, messenger)
	if err := checker.RunCheck(context.Background()); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	if _, ok := messenger.sent["U2"]; !ok {
		t.Error("U1's dispatch failure must not abort U2's report")
	}
}

func TestRunCheckRecordsSummary(t *testing.T) {
	store, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	reports := reportService.New(store)

	watchlists := &fakeWatchlists{data: map[string]*watchlistDomain.Watchlist{
		"U1": {Channels: []string{"eng"}},
		"U2": {Channels: []string{}},
	}}
	resolver := &fakeResolver{ids: map[string]string{"eng": "C-eng"}}
	messenger := &fakeMessenger{messages: map[string]*slackapi.Message{
		"C-eng": messageAged(72*time.Hour, 0),
	}}

	cfg := &config.Config{CheckIntervalHours: 24}
	checker := New(cfg, watchlists, resolver, messenger, reports)
	if err := checker.RunCheck(context.Background()); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	history, err := reports.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(history))
	}
	run := history[0]
	if run.UsersChecked != 1 || run.UsersNotified != 1 || run.StagnantTotal != 1 {
		t.Errorf("unexpected summary: %+v", run)
	}
}
