package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopify-insights/extractor"
	"shopify-insights/internal/config"
	"shopify-insights/storage"
)

func main() {
	configPath := flag.String("config", "", "config file (default is ./insights.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		config.NewLogger(config.LoggingConfig{Level: "info"}).Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := cfg.ExtractorSettings()
	insights := extractor.NewInsightsExtractor(settings, logger)
	defer insights.Close()
	finder := extractor.NewCompetitorFinder(settings, logger)
	defer finder.Close()

	var saver brandSaver
	if cfg.Database.DSN != "" {
		store, err := storage.NewBrandStore(ctx, storage.BrandStoreConfig{
			DSN:      cfg.Database.DSN,
			Table:    cfg.Database.Table,
			MaxConns: cfg.Database.MaxConns,
		})
		if err != nil {
			logger.Fatalf("Failed to open brand store: %v", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatalf("Failed to prepare brand store: %v", err)
		}
		saver = store
		logger.Info("Brand store enabled")
	}

	server := NewServer(insights, finder, saver, logger, cfg.Server.BuildTimeout)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Graceful shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting API server on port %s", cfg.Server.Port)
	logger.Info("Available endpoints:")
	logger.Info("  GET  /health         - Health check")
	logger.Info("  GET  /fetch-insights - Build brand context (?website_url=)")
	logger.Info("  POST /fetch-insights - Build brand context ({\"website_url\": ...})")
	logger.Info("  GET  /competitors    - Similar storefronts (?website_url=&max=)")
	logger.Info("  GET  /metrics        - Prometheus metrics")

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
}
