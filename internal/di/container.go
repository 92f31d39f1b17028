package di

import (
	"io"
	"log/slog"

	reportService "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/report/service"
	resolverRepo "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/resolver/repository"
	resolverService "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/resolver/service"
	stagnancyService "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/stagnancy/service"
	watchlistRepo "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/repository"
	watchlistService "github.com/reshetovitsme/slack-stagnant-watch/internal/modules/watchlist/service"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/config"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/kv"
	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/slackapi"
	httpServer "github.com/reshetovitsme/slack-stagnant-watch/internal/transport/http"
	slackTransport "github.com/reshetovitsme/slack-stagnant-watch/internal/transport/slack"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register KV Store
	do.Provide(injector, func(i do.Injector) (kv.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)

		switch cfg.StorageBackend {
		case config.StorageBackendRedis:
			store, err := kv.NewRedisStore(cfg.RedisURL)
			if err != nil {
				return nil, oops.With("context", "failed to initialize redis store").Wrap(err)
			}
			return store, nil
		default:
			store, err := kv.NewFileStore(cfg.StoragePath)
			if err != nil {
				return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize file store").Wrap(err)
			}
			return store, nil
		}
	})

	// Register Slack API Client
	do.Provide(injector, func(i do.Injector) (*slackapi.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return slackapi.New(cfg.SlackBotToken), nil
	})

	// Register Watchlist Repository
	do.Provide(injector, func(i do.Injector) (watchlistRepo.Repository, error) {
		store := do.MustInvoke[kv.Store](i)
		return watchlistRepo.NewKVStorage(store), nil
	})

	// Register Watchlist Service
	do.Provide(injector, func(i do.Injector) (*watchlistService.Service, error) {
		repo := do.MustInvoke[watchlistRepo.Repository](i)
		return watchlistService.New(repo), nil
	})

	// Register Resolver Repository
	do.Provide(injector, func(i do.Injector) (resolverRepo.Repository, error) {
		store := do.MustInvoke[kv.Store](i)
		return resolverRepo.NewKVStorage(store), nil
	})

	// Register Resolver Service
	do.Provide(injector, func(i do.Injector) (*resolverService.Service, error) {
		repo := do.MustInvoke[resolverRepo.Repository](i)
		client := do.MustInvoke[*slackapi.Client](i)
		return resolverService.New(repo, client), nil
	})

	// Register Report Service
	do.Provide(injector, func(i do.Injector) (*reportService.Service, error) {
		store := do.MustInvoke[kv.Store](i)
		return reportService.New(store), nil
	})

	// Register Stagnancy Service
	do.Provide(injector, func(i do.Injector) (*stagnancyService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		watchlists := do.MustInvoke[*watchlistService.Service](i)
		resolver := do.MustInvoke[*resolverService.Service](i)
		client := do.MustInvoke[*slackapi.Client](i)
		reports := do.MustInvoke[*reportService.Service](i)
		return stagnancyService.New(cfg, watchlists, resolver, client, reports), nil
	})

	// Register Slack Command Handler
	do.Provide(injector, func(i do.Injector) (*slackTransport.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		watchlists := do.MustInvoke[*watchlistService.Service](i)
		return slackTransport.New(cfg, watchlists), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		commands := do.MustInvoke[*slackTransport.Handler](i)
		reports := do.MustInvoke[*reportService.Service](i)
		checker := do.MustInvoke[*stagnancyService.Service](i)
		server := httpServer.New(cfg, commands, reports, checker)
		server.SetLogger(slog.Default())
		return server, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	// Stop the periodic checker if it exists
	if checker, err := do.Invoke[*stagnancyService.Service](injector); err == nil && checker != nil {
		checker.Stop()
	}

	// Close the store if the backend holds connections
	if store, err := do.Invoke[kv.Store](injector); err == nil && store != nil {
		if closer, ok := store.(io.Closer); ok {
			closer.Close()
		}
	}

	return nil
}
