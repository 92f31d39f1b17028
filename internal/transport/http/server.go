package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	reportService "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/report/service"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/config"
	slackTransport "github.com/reshetovitsme/slack-stagnant-watch/internal/transport/slack"
	sloghttp "github.com/samber/slog-http"
)

// Checker runs a stagnancy sweep on demand.
type Checker interface {
	RunCheck(ctx context.Context) error
}

// Server exposes the slash-command webhooks and operational endpoints
type Server struct {
	cfg      *config.Config
	commands *slackTransport.Handler
	reports  *reportService.Service
	checker  Checker
	logger   *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, commands *slackTransport.Handler, reports *reportService.Service, checker Checker) *Server {
	return &Server{
		cfg:      cfg,
		commands: commands,
		reports:  reports,
		checker:  checker,
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Slack slash-command webhooks
	mux.HandleFunc("POST /commands/watch", s.commands.HandleWatch)
	mux.HandleFunc("POST /commands/unwatch", s.commands.HandleUnwatch)
	mux.HandleFunc("POST /commands/list", s.commands.HandleList)

	// Manual check trigger
	mux.HandleFunc("POST /check", s.handleCheck)

	// RSS feed of recent check runs
	mux.HandleFunc("GET /feed/runs", s.handleRunsFeed)

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("HTTP server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// handleCheck kicks off a sweep in the background and acks immediately,
// mirroring how the scheduled run behaves.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := s.checker.RunCheck(context.Background()); err != nil {
			s.logger.Error("Manual check failed", "error", err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"status":"check started"}`))
}

func (s *Server) handleRunsFeed(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	feed, err := s.reports.Feed(r.Context(), baseURL)
	if err != nil {
		s.logger.Error("Error generating runs feed", "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","storage":"%s","slack_configured":%t}`,
		s.cfg.StorageBackend, s.cfg.SlackBotToken != "")
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
