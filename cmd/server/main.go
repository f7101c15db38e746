package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/productdesk/internal/config"
	"github.com/mamadbah2/productdesk/internal/scheduler"
	"github.com/mamadbah2/productdesk/internal/server/handlers"
	"github.com/mamadbah2/productdesk/internal/server/ratelimit"
	"github.com/mamadbah2/productdesk/internal/server/router"
	"github.com/mamadbah2/productdesk/internal/service/dashboard"
	"github.com/mamadbah2/productdesk/pkg/clients/products"
	"github.com/mamadbah2/productdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	productsClient := products.NewClient(cfg.ProductsAPI, logger.Named(baseLogger, "client.products"))
	dashboardLogger := logger.Named(baseLogger, "svc.dashboard")
	sessions := dashboard.NewSessionManager(func() *dashboard.Dashboard {
		return dashboard.New(productsClient, dashboardLogger)
	})
	limiter := ratelimit.New(cfg.RateLimit)

	dashboardHandler := handlers.NewDashboardHandler(sessions, logger.Named(baseLogger, "handlers.dashboard"))
	engine := router.New(dashboardHandler, limiter, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Session, map[string]scheduler.Sweeper{
		"sessions": sessions,
		"visitors": limiter,
	}, logger.Named(baseLogger, "scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("products_api", cfg.ProductsAPI.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
