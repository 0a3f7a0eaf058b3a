package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/deckflash/internal/analytics"
	"github.com/vytor/deckflash/internal/api"
	"github.com/vytor/deckflash/internal/config"
	"github.com/vytor/deckflash/internal/db"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/repository/sqlite"
	"github.com/vytor/deckflash/internal/services"
	"github.com/vytor/deckflash/internal/training"
	"github.com/vytor/deckflash/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	registry := deck.DefaultRegistry()
	if !registry.Has(cfg.DefaultStack) {
		log.Error("DEFAULT_STACK %q is not one of %v", cfg.DefaultStack, registry.Names())
		os.Exit(1)
	}

	log.Info("deckflash server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("analytics_worker_count=%d", cfg.AnalyticsWorkerCount)
	log.Debug("analytics_queue_size=%d", cfg.AnalyticsQueueSize)
	log.Debug("history_limit=%d", cfg.HistoryLimit)
	log.Debug("default_stack=%s", cfg.DefaultStack)
	log.Debug("stacks=%v", registry.Names())

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	kvRepo := sqlite.NewKVRepository(database.DB)
	eventRepo := sqlite.NewEventRepository(database.DB)

	analyticsPool := worker.NewPool(cfg.AnalyticsWorkerCount, cfg.AnalyticsQueueSize)
	tracker := analytics.NewTracker(analyticsPool, eventRepo)

	progressStore := services.NewProgressStore(sqlite.NewProgressRepository(kvRepo, cfg.HistoryLimit), cfg.HistoryLimit)
	preferencesService := services.NewPreferencesService(sqlite.NewPreferencesRepository(kvRepo), registry, cfg.DefaultStack, tracker)

	srv := &api.Server{
		DB:                 database.DB,
		Registry:           registry,
		TrainingService:    services.NewTrainingService(registry, preferencesService, progressStore, tracker, training.SystemRNG()),
		PreferencesService: preferencesService,
		StatsService:       services.NewStatsService(progressStore, registry, tracker),
		EventService:       services.NewEventService(eventRepo, tracker),
	}

	// Event writes run with their own context so queued events still land
	// during shutdown.
	analyticsPool.Start(context.Background())

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("draining analytics pool (%d queued)", analyticsPool.QueueSize())
	analyticsPool.Stop()

	log.Info("deckflash server stopped")
}
