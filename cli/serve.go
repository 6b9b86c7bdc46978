package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"recycle-sorter/config"
	httpLayer "recycle-sorter/http"
	"recycle-sorter/logging"
	"recycle-sorter/repository"
	"recycle-sorter/service"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web page and JSON API",
		Long: `Run the HTTP server. Settings come from the environment or a .env file
(SORTER_ADDR, SORTER_RATE_LIMIT, REDIS_ADDR, SORTER_LOG_LEVEL, ...).`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	cache, closeCache, err := newCache(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	sortingService := service.NewSortingService(repository.NewItemRepositoryMemory(), cache, logger)

	itemHandler := httpLayer.NewItemHandler(sortingService, logger)
	pageHandler := httpLayer.NewPageHandler(sortingService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      httpLayer.NewRouter(itemHandler, pageHandler, rateLimiter, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

func newCache(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (repository.CacheRepository, func(), error) {
	if !cfg.UseRedis() {
		logger.Info("using in-memory classification cache")
		return repository.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries), func() {}, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	rc := repository.NewRedisCache(repository.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   "recycle-sorter:",
		TTL:      cfg.CacheTTL,
	})
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}

	logger.Info("using redis classification cache", "addr", cfg.RedisAddr)
	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("closing redis", "error", err)
		}
	}, nil
}
