package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"makwell-storefront/internal/app"
	"makwell-storefront/internal/catalog"
	"makwell-storefront/internal/checkout"
	"makwell-storefront/internal/config"
	"makwell-storefront/internal/db"
	"makwell-storefront/internal/httpapi"
	"makwell-storefront/internal/imageresolver"
	"makwell-storefront/internal/kvstore"
	"makwell-storefront/internal/logger"
	"makwell-storefront/internal/metrics"
	"makwell-storefront/internal/middleware"
	"makwell-storefront/internal/preference"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout  = 10 * time.Second
	janitorInterval  = time.Minute
	redisPingTimeout = 3 * time.Second
)

// openStoreFunc is swapped in tests.
var openStoreFunc = openStore

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg)
}

type server struct {
	sessions *app.Sessions
	limiter  *middleware.Limiter
	handler  http.Handler
}

func newServer(cfg *config.Config, store kvstore.Store) *server {
	reg := metrics.NewRegistry()

	sessions := app.NewSessions(app.Deps{
		Catalog:     catalog.NewStore(reg),
		Images:      imageresolver.New(cfg.ImageRoot, cfg.PlaceholderURL),
		Store:       store,
		Checkout:    checkout.NewService(cfg.Brand, cfg.Currency, checkout.LogSink{}, reg),
		Metrics:     reg,
		Currency:    cfg.Currency,
		PageSize:    cfg.PageSize,
		SystemTheme: preference.Theme(cfg.SystemTheme),
	})
	limiter := middleware.NewLimiter()

	return &server{
		sessions: sessions,
		limiter:  limiter,
		handler: httpapi.NewRouter(httpapi.NewHandler(sessions), httpapi.RouterOptions{
			CORSOrigin: cfg.CORSOrigin,
			Limiter:    limiter,
		}),
	}
}

func newLoader(cfg *config.Config) catalog.Loader {
	if cfg.CatalogFile != "" {
		return catalog.NewFileLoader(cfg.CatalogFile)
	}
	return catalog.NewHTTPLoader(cfg.CatalogURL, cfg.CatalogTimeout)
}

// openStore returns the configured key-value backend, namespaced with
// STORE_PREFIX, and a func releasing its connections.
func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		return kvstore.NewMemory(), noop, nil

	case config.StoreFile:
		return kvstore.Namespaced(kvstore.NewFile(cfg.StoreFile), cfg.StorePrefix), noop, nil

	case config.StorePostgres:
		database, err := db.NewDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		closer := func() { _ = database.Close() }
		return kvstore.Namespaced(kvstore.NewPostgres(database), cfg.StorePrefix), closer, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		closer := func() { _ = client.Close() }
		return kvstore.Namespaced(kvstore.NewRedis(client), cfg.StorePrefix), closer, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStoreDriver, cfg.StoreDriver)
}

// serve runs the HTTP server, the catalog load and the janitors until ctx
// is cancelled or one of them fails.
func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.L()

	store, closeStore, err := openStoreFunc(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	srv := newServer(cfg, store)
	httpServer := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// A failed load is logged by the store and leaves the catalog empty.
		_ = srv.sessions.Catalog().Load(gctx, newLoader(cfg))
		return nil
	})

	g.Go(func() error {
		srv.limiter.Run(gctx, janitorInterval)
		return nil
	})

	g.Go(func() error {
		srv.sessions.Run(gctx, janitorInterval, cfg.SessionIdle)
		return nil
	})

	g.Go(func() error {
		log.Info("storefront api listening",
			zap.String("addr", httpServer.Addr),
			zap.String("store", cfg.StoreDriver),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
