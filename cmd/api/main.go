package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"movie-recommender/internal/bootstrap"
	"movie-recommender/internal/config"
	"movie-recommender/internal/domain/entity"
	"movie-recommender/internal/infra/poster"
	"movie-recommender/internal/observability/logging"
	"movie-recommender/internal/observability/tracing"
	recUC "movie-recommender/internal/usecase/recommend"

	hhttp "movie-recommender/internal/handler/http"
	hrec "movie-recommender/internal/handler/http/recommend"
	"movie-recommender/internal/handler/http/requestid"

	_ "movie-recommender/docs" // swagger docs
)

// @title           Movie Recommender API
// @version         1.0
// @description     Content-based movie recommendations from a precomputed similarity catalog, with TMDB posters.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	configPath := flag.String("config", "", "path to YAML config (default $RECOMMENDER_CONFIG)")
	flag.Parse()

	bootLogger := logging.NewLogger()
	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		bootLogger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	catalog := initCatalog(logger, cfg)
	defer func() {
		if err := catalog.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	posters, tmdb := initPosterResolver(logger, cfg.Poster)
	if tmdb != nil {
		defer tmdb.Close()
	}

	version := getVersion()
	handler := setupServer(logger, cfg, catalog, posters, tmdb, version)

	runServer(logger, cfg.Server, handler, version)
}

// initLogger initializes the process-wide structured logger.
func initLogger(cfg config.LogConfig) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.Level, cfg.Format)
	slog.SetDefault(logger)
	return logger
}

// initCatalog loads the catalog or exits. A missing artifact is reported
// with a hint, since the server cannot do anything useful without it.
func initCatalog(logger *slog.Logger, cfg *config.AppConfig) *bootstrap.Catalog {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog, err := bootstrap.LoadCatalog(ctx, cfg.Catalog, logger)
	if err != nil {
		if errors.Is(err, entity.ErrStartupDataMissing) {
			logger.Error("catalog artifact missing", slog.Any("error", err))
		} else {
			logger.Error("failed to load catalog", slog.Any("error", err))
		}
		os.Exit(1)
	}
	return catalog
}

// initPosterResolver returns the resolver used by the service and, when a
// TMDB key is configured, the TMDB resolver itself for health and shutdown.
// Without a key every poster is the placeholder image.
func initPosterResolver(logger *slog.Logger, cfg poster.Config) (recUC.PosterResolver, *poster.TMDBResolver) {
	posters, tmdb, err := bootstrap.NewServingPosterResolver(cfg, logger)
	if err != nil {
		logger.Error("invalid poster configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if tmdb != nil {
		logger.Info("poster resolver initialized",
			slog.String("base_url", cfg.BaseURL),
			slog.Duration("timeout", cfg.Timeout),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("cache_ttl", cfg.CacheTTL))
	}
	return posters, tmdb
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer builds the service, registers routes and applies middleware.
func setupServer(
	logger *slog.Logger,
	cfg *config.AppConfig,
	catalog *bootstrap.Catalog,
	posters recUC.PosterResolver,
	tmdb *poster.TMDBResolver,
	version string,
) http.Handler {
	health := &hhttp.HealthHandler{Catalog: catalog.Catalog, DB: catalog.DB, Version: version}
	if tmdb != nil {
		health.Posters = tmdb
	}

	svc := bootstrap.NewService(catalog.Catalog, posters, cfg)

	mux := http.NewServeMux()
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Catalog: catalog.Catalog, DB: catalog.DB})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hrec.Register(mux, svc, hrec.Config{MaxLimit: cfg.Recommend.MaxLimit})

	return applyMiddleware(logger, mux, cfg.Server)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Request ID → Recovery → Logging → Tracing →
// Input validation → Timeout → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler, cfg config.ServerConfig) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(cfg.WriteTimeout)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg config.ServerConfig, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout, // Prevent Slowloris attacks
		ReadTimeout:       cfg.ReadTimeout,
		// Leave headroom past the handler timeout so its 504 can be written.
		WriteTimeout: cfg.WriteTimeout + 5*time.Second,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
