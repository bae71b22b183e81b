// Package server owns the HTTP lifecycle: boot, serve, graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/tokri/app/controllers"
	"github.com/shashiranjanraj/tokri/app/images"
	"github.com/shashiranjanraj/tokri/app/repositories"
	"github.com/shashiranjanraj/tokri/app/routes"
	"github.com/shashiranjanraj/tokri/app/services"
	"github.com/shashiranjanraj/tokri/config"
	"github.com/shashiranjanraj/tokri/pkg/cache"
	"github.com/shashiranjanraj/tokri/pkg/logger"
	"github.com/shashiranjanraj/tokri/pkg/metrics"
	"github.com/shashiranjanraj/tokri/pkg/middleware"
	"github.com/shashiranjanraj/tokri/pkg/mongodb"
	"github.com/shashiranjanraj/tokri/pkg/reqid"
	"github.com/shashiranjanraj/tokri/pkg/router"
	"github.com/shashiranjanraj/tokri/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Start boots every subsystem, serves until SIGINT/SIGTERM, then drains
// in-flight requests. MongoDB must be reachable before the listener opens;
// Redis and object storage degrade gracefully when absent.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bootCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := mongodb.Connect(bootCtx); err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongodb.Disconnect(ctx)
	}()

	var logSink *logger.MongoHandler
	if config.MongoLogEnabled() {
		logSink = logger.NewMongoHandler(mongodb.Collection("logs"), slog.LevelInfo)
		logger.AttachHandler(logSink)
		defer logSink.Close()
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	defer cache.Close()

	if err := storage.Connect(); err != nil {
		return fmt.Errorf("connect storage: %w", err)
	}

	strategy, err := images.ForName(config.ImageStrategy())
	if err != nil {
		return fmt.Errorf("image strategy: %w", err)
	}
	logger.Info("image strategy selected", "strategy", strategy.Name())

	if err := repositories.EnsureIndexes(bootCtx, mongodb.DB()); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	repo := repositories.NewMongoRepository(mongodb.DB())

	svc := services.NewProductService(repo, strategy)
	products := controllers.NewProductController(svc)

	handler := buildHandler(products, strategy)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tokri listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// buildHandler assembles the global middleware stack and mounts all routes.
//
// Stack order (outermost first):
//  1. Prometheus metrics, outermost for accurate total latency
//  2. Recovery, catches panics before they kill the goroutine
//  3. Request ID, injected before anything logs
//  4. Logger, tags every line with request_id
//  5. CORS
//  6. Rate limiter
func buildHandler(products *controllers.ProductController, strategy images.Strategy) http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	routes.RegisterAPI(r, products)
	routes.RegisterOps(r)

	// Disk-stored images are served straight from the uploads directory.
	if strategy.Name() == "disk" {
		routes.RegisterUploads(r, storage.LocalRoot())
	}

	return r.Handler()
}
