// cmd/api is the activities API entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/config"
	"github.com/Shivanand-hulikatti/activity-board/internal/database"
	"github.com/Shivanand-hulikatti/activity-board/internal/handler"
	"github.com/Shivanand-hulikatti/activity-board/internal/logger"
	"github.com/Shivanand-hulikatti/activity-board/internal/repository"
	"github.com/Shivanand-hulikatti/activity-board/internal/service"
)

func main() {
	cfg, err := config.Load("activities-api")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog := logger.Must(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── 1. Choose the store ──────────────────────────────────────────────
	repo, closeRepo, err := openRepository(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("open repository", zap.Error(err))
	}
	defer closeRepo()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	activitySvc := service.NewActivityService(repo, zlog)
	activityHandler := handler.NewActivityHandler(activitySvc, zlog)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.RequestLogger(zlog))
	r.Use(handler.CORS())

	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	if cfg.Board.PublicURL != "" {
		r.Get("/", handler.Redirect(cfg.Board.PublicURL))
	}
	activityHandler.Routes(r)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		zlog.Info("activities API listening",
			zap.String("addr", srv.Addr),
			zap.String("driver", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	zlog.Info("server stopped")
}

// openRepository returns the configured store and a function releasing it.
// The postgres store is migrated and seeded on first start.
func openRepository(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (repository.ActivityRepository, func(), error) {
	if cfg.Database.Driver != config.DriverPostgres {
		return repository.NewMemoryRepository(repository.DefaultActivities()), func() {}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database.Postgres, zlog)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	repo := repository.NewPostgresRepository(pool)
	if err := repo.Seed(ctx, repository.DefaultActivities()); err != nil {
		pool.Close()
		return nil, nil, err
	}
	zlog.Info("connected to postgres", zap.String("host", cfg.Database.Postgres.Host))
	return repo, pool.Close, nil
}
