// ABOUTME: Main entry point for the AO Radar API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ao-radar-api/api"
	"ao-radar-api/api/handlers"
	"ao-radar-api/core/ingest"
	"ao-radar-api/core/interfaces"
	"ao-radar-api/infrastructure/cache/memory"
	"ao-radar-api/infrastructure/cache/redis"
	stdhttp "ao-radar-api/infrastructure/http/standard"
	logruslogger "ao-radar-api/infrastructure/logger/logrus"
	"ao-radar-api/infrastructure/storage/sqlite"
	"ao-radar-api/pkg/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger()
	logger.Info("Starting AO Radar API", map[string]interface{}{
		"port":        cfg.Server.Port,
		"cache_type":  cfg.Cache.Type,
		"sqlite_path": cfg.Storage.SQLitePath,
		"concurrency": cfg.Ingest.Concurrency,
	})

	// Fetch cache backend
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache()
		logger.Info("Using memory cache", nil)
	}

	httpClient := stdhttp.NewStandardHTTPClient(cfg.Ingest.FetchTimeout)

	store, err := sqlite.NewStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	fetchers := []ingest.Fetcher{
		ingest.NewFeedFetcher(deps, cfg.Ingest.FeedItemCap),
		ingest.NewStructuredAPIFetcher(deps, cfg.Ingest.APIResultLimit, ingest.FilterMode(cfg.Ingest.APIFilterMode)),
	}
	ingestService := ingest.NewService(deps, store, store, store, fetchers, ingest.Options{
		Concurrency: cfg.Ingest.Concurrency,
	})

	if cfg.Ingest.Secret == "" {
		logger.Warn("INGEST_SECRET is empty; the ingestion trigger is disabled", nil)
	}

	apiConfig := api.APIConfig{
		Logger:     logger,
		RateLimit:  100, // requests per minute per IP
		RateWindow: time.Minute,
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewHealthHandler().RegisterRoutes(humaAPI)
	ingestHandler := handlers.NewIngestHandler(ingestService, cfg.Ingest.Secret, cfg.Ingest.RunTimeout)
	ingestHandler.RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Ingest.RunTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}
