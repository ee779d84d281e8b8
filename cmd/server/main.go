package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"melodex/internal/cache"
	"melodex/internal/config"
	"melodex/internal/handlers"
	"melodex/internal/models"
	"melodex/internal/recommend"
	"melodex/internal/repositories"
	"melodex/internal/search"
)

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.Database)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(context.Background())

	if err := db.CreateIndexes(context.Background()); err != nil {
		slog.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	// Initialize cache; fall back to in-memory when no Valkey is configured
	var searchCache cache.Cache
	if cfg.ValkeyURL != "" {
		searchCache, err = cache.NewValkeyCache(cfg.ValkeyURL)
		if err != nil {
			slog.Error("Failed to initialize cache", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("No VALKEY_URL configured, using in-memory cache")
		searchCache = cache.NewMemoryCache(1000)
	}
	defer searchCache.Close()

	// Initialize repositories and engines
	catalogRepo := repositories.NewMongoCatalogRepository(db)
	historyRepo := repositories.NewMongoHistoryRepository(db)

	searchEngine := search.NewEngine(catalogRepo)
	recommendEngine := recommend.NewEngine(catalogRepo, historyRepo, cfg.RecommendTargetSize, cfg.PreferenceTopK)

	router := handlers.Router{
		Search:          handlers.NewSearchHandler(searchEngine, searchCache, cfg.SearchCacheTTL, cfg.QuickSearchLimit),
		Recommendations: handlers.NewRecommendationHandler(recommendEngine),
		History:         handlers.NewHistoryHandler(historyRepo),
		DB:              db,
		Cache:           searchCache,
		Catalog:         catalogRepo,
		JWTSecret:       cfg.JWTSecret,
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Setup(),
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}
