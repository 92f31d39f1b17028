package slack

import (
	"bytes"
	"context"
	"encoding/json"
	goerrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	watchlistService "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/service"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/config"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/slack-go/slack"
)

const (
	watchUsage   = "Usage: `/watch #channel-name`\nPlease include the # symbol."
	unwatchUsage = "Usage: `/unwatch #channel-name`\nPlease include the # symbol."

	invalidNameText = "❌ Invalid channel name. Channel names must:\n" +
		"• Be 1-80 characters long\n" +
		"• Only contain lowercase letters, numbers, hyphens, and underscores\n" +
		"• Not contain spaces or special characters"

	limitReachedText   = "❌ You've reached the maximum of 50 monitored channels."
	saveFailedText     = "❌ Error saving data. Please try again."
	genericFailureText = "❌ An unexpected error occurred. Please try again."
)

// Handler serves the slash-command surface: /watch, /unwatch, /list.
// Every command is acknowledged with an immediate 200 before any
// business logic runs; the reply is delivered through the command's
// response_url as an ephemeral message.
type Handler struct {
	cfg        *config.Config
	watchlists *watchlistService.Service
	httpClient *http.Client
}

// New creates a slash-command handler.
func New(cfg *config.Config, watchlists *watchlistService.Service) *Handler {
	return &Handler{
		cfg:        cfg,
		watchlists: watchlists,
		httpClient: http.DefaultClient,
	}
}

func (h *Handler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.watchReply)
}

func (h *Handler) HandleUnwatch(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.unwatchReply)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.listReply)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, reply func(ctx context.Context, cmd slack.SlashCommand) string) {
	if err := h.verifySignature(r); err != nil {
		slog.Warn("Rejected slash command with bad signature", "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		slog.Error("Failed to parse slash command", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Acknowledge unconditionally before any processing; Slack expects
	// the ack within three seconds regardless of business outcome.
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	h.respond(cmd.ResponseURL, reply(r.Context(), cmd))
}

// verifySignature checks the request against the signing secret when
// one is configured; without a secret the check is skipped.
func (h *Handler) verifySignature(r *http.Request) error {
	if h.cfg.SlackSigningSecret == "" {
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	verifier, err := slack.NewSecretsVerifier(r.Header, h.cfg.SlackSigningSecret)
	if err != nil {
		return err
	}
	if _, err := verifier.Write(body); err != nil {
		return err
	}
	return verifier.Ensure()
}

func (h *Handler) watchReply(ctx context.Context, cmd slack.SlashCommand) string {
	name, ok := parseChannelArg(cmd.Text)
	if !ok {
		return watchUsage
	}

	added, err := h.watchlists.Add(ctx, cmd.UserID, name)
	switch {
	case goerrors.Is(err, errors.ErrInvalidChannelName):
		return invalidNameText
	case goerrors.Is(err, errors.ErrWatchlistFull):
		return limitReachedText
	case err != nil:
		slog.Error("Failed to add channel", "user_id", cmd.UserID, "channel", name, "error", err)
		return saveFailedText
	case !added:
		return "Channel *#" + name + "* is already being monitored."
	default:
		return "✅ Added *#" + name + "* to your personal watchlist."
	}
}

func (h *Handler) unwatchReply(ctx context.Context, cmd slack.SlashCommand) string {
	name, ok := parseChannelArg(cmd.Text)
	if !ok {
		return unwatchUsage
	}

	removed, err := h.watchlists.Remove(ctx, cmd.UserID, name)
	switch {
	case err != nil:
		slog.Error("Failed to remove channel", "user_id", cmd.UserID, "channel", name, "error", err)
		return saveFailedText
	case !removed:
		return "Channel *#" + name + "* is not in your watchlist."
	default:
		return "🗑️ Removed *#" + name + "* from your watchlist."
	}
}

func (h *Handler) listReply(ctx context.Context, cmd slack.SlashCommand) string {
	channels, err := h.watchlists.List(ctx, cmd.UserID)
	if err != nil {
		slog.Error("Failed to list channels", "user_id", cmd.UserID, "error", err)
		return genericFailureText
	}

	if len(channels) == 0 {
		return "You're not monitoring any channels yet."
	}

	lines := lo.Map(channels, func(name string, _ int) string {
		return "• #" + name
	})
	return "👀 You're currently monitoring:\n" + strings.Join(lines, "\n")
}

// parseChannelArg extracts the channel name from a command argument.
// The strict contract: a leading # is required, the remainder is
// lowercased, and an empty remainder is rejected.
func parseChannelArg(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "#") {
		return "", false
	}

	name := strings.ToLower(strings.TrimPrefix(text, "#"))
	if name == "" {
		return "", false
	}

	return name, true
}

// respond delivers the reply to the command's response_url as an
// ephemeral message.
func (h *Handler) respond(responseURL, text string) {
	if responseURL == "" {
		return
	}

	payload, err := json.Marshal(map[string]string{
		"response_type": "ephemeral",
		"text":          text,
	})
	if err != nil {
		slog.Error("Failed to marshal command response", "error", err)
		return
	}

	resp, err := h.httpClient.Post(responseURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		slog.Error("Failed to deliver command response", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		slog.Error("Command response rejected", "status", resp.StatusCode)
	}
}
