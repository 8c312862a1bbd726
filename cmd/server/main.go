package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/signalist/signalist/internal/aggregator"
	"github.com/signalist/signalist/internal/quotes"
	"github.com/signalist/signalist/internal/server"
	"github.com/signalist/signalist/internal/watchlist"
	"github.com/signalist/signalist/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}
	logger.Init()

	// 1. Configuration
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = "user=user password=password dbname=signalist sslmode=disable host=127.0.0.1 port=5432"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	apiKey := os.Getenv("FINNHUB_API_KEY")
	if apiKey == "" {
		slog.Error("FINNHUB_API_KEY environment variable is not set")
		os.Exit(1)
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	cacheTTL := 30 * time.Second
	if raw := os.Getenv("QUOTE_CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cacheTTL = time.Duration(secs) * time.Second
		}
	}

	// 2. Connect to the database
	slog.Info("Connecting to database...")
	store, err := watchlist.NewStore(connStr)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.AutoMigrate(); err != nil {
		slog.Error("Failed to auto-migrate schema", "error", err)
		os.Exit(1)
	}
	slog.Info("Schema migrated")

	// 3. Connect to Redis (quote cache)
	slog.Info("Connecting to Redis...")
	cache, err := quotes.NewRedisCache(redisAddr, cacheTTL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer cache.Close()
	slog.Info("Connected to Redis", "ttl", cacheTTL)

	// 4. Quote provider, aggregator, handlers
	client := quotes.NewClient(apiKey, quotes.WithCache(cache))
	agg := aggregator.New(store, client)

	// Optional live stream keeps cached quotes fresh between REST fetches.
	if os.Getenv("QUOTE_STREAM") == "enabled" {
		symbols, err := streamSymbols(store)
		if err != nil {
			slog.Warn("Could not load symbols for stream", "error", err)
		} else if len(symbols) > 0 {
			stream := quotes.NewStream(apiKey, symbols, cache)
			if err := stream.Start(); err != nil {
				slog.Warn("Quote stream failed to start", "error", err)
			} else {
				defer stream.Close()
			}
		}
	}

	// 5. Set up Gin router
	router := gin.Default()
	handler := server.NewHandler(store, agg, client, baseURL)
	handler.Register(router)

	// 6. Start server in goroutine
	go func() {
		slog.Info("API server listening", "port", port)
		if err := router.Run(":" + port); err != nil {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// 7. Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	sig := <-stop
	slog.Info("Shutdown signal received", "signal", sig)
	slog.Info("Shutting down API server...")
}

func streamSymbols(store *watchlist.Store) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return store.AllSymbols(ctx)
}
