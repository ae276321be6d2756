package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/lol-companion/external/riot"
	"github.com/riskibarqy/lol-companion/internal/config"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
	cacherepo "github.com/riskibarqy/lol-companion/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/lol-companion/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/lol-companion/internal/platform/cache"
	"github.com/riskibarqy/lol-companion/internal/platform/logging"
	"github.com/riskibarqy/lol-companion/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App owns the HTTP server and the resources behind it.
type App struct {
	Server  *http.Server
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repo, closeRepo, err := openMatchRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	out := &App{closers: []func() error{closeRepo}}

	if cfg.CacheEnabled {
		repo = cacherepo.NewMatchRepository(repo, basecache.NewStore(cfg.CacheTTL))
	}

	riotClient := riot.NewClient(riot.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.RiotTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURLTemplate: cfg.RiotBaseURLTemplate,
		Token:           cfg.RiotAPIKey,
		Timeout:         cfg.RiotTimeout,
		MaxRetries:      cfg.RiotMaxRetries,
		RetryBackoff:    cfg.RiotRetryBackoff,
		Logger:          logger,
		CircuitBreaker:  cfg.RiotCircuit,
	})
	if cfg.RiotAPIKey == "" {
		logger.Warn("RIOT_API_KEY is empty, upstream lookups will be rejected")
	}

	matchSvc := usecase.NewMatchService(repo, riotClient, logger, usecase.MatchServiceConfig{
		DefaultWinningTeam: cfg.MatchDefaultWinningTeam,
		BatchWorkers:       cfg.MatchBatchWorkers,
	})

	handler := httpapi.NewHandler(matchSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	if cfg.HTTPAddr == "" {
		_ = out.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	out.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app initialized",
		"store", cfg.MatchStoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"riot_circuit_enabled", cfg.RiotCircuit.Enabled,
	)
	return out, nil
}

// Close releases the match store.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openMatchRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (match.Repository, func() error, error) {
	switch cfg.MatchStoreDriver {
	case config.StorePostgres:
		return openPostgresStore(cfg, logger)
	case config.StoreDynamoDB:
		repo, err := openDynamoStore(ctx, cfg, logger)
		return repo, noopClose, err
	case config.StoreMemory, "":
		logger.Info("match store ready", "driver", config.StoreMemory)
		return newMemoryStore(), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unsupported match store driver %q", cfg.MatchStoreDriver)
	}
}

func noopClose() error { return nil }
