package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/signalist/signalist/internal/digest"
	"github.com/signalist/signalist/internal/quotes"
	"github.com/signalist/signalist/internal/watchlist"
	"github.com/signalist/signalist/pkg/logger"
)

// The digest job runs once per invocation and exits; scheduling is left to
// cron or the container orchestrator.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}
	logger.Init()

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = "user=user password=password dbname=signalist sslmode=disable host=127.0.0.1 port=5432"
	}

	apiKey := os.Getenv("FINNHUB_API_KEY")
	if apiKey == "" {
		slog.Error("FINNHUB_API_KEY environment variable is not set")
		os.Exit(1)
	}

	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		kafkaBrokers = "localhost:9092"
	}
	brokers := strings.Split(kafkaBrokers, ",")

	kafkaTopic := os.Getenv("KAFKA_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = digest.DefaultTopic
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	slog.Info("Connecting to database...")
	store, err := watchlist.NewStore(connStr)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	slog.Info("Connecting to Kafka...")
	publisher, err := digest.NewPublisher(brokers, kafkaTopic)
	if err != nil {
		slog.Error("Failed to create digest publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	client := quotes.NewClient(apiKey)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := run(ctx, store, client, publisher, baseURL); err != nil {
		slog.Error("Digest run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, store *watchlist.Store, client *quotes.Client, publisher *digest.Publisher, baseURL string) error {
	users, err := store.UsersForDigest(ctx)
	if err != nil {
		return err
	}
	slog.Info("Digest run starting", "recipients", len(users))

	// One news fetch serves every recipient.
	newsHTML := ""
	if articles, err := client.FetchMarketNews(ctx, 6); err == nil {
		newsHTML = quotes.RenderNewsHTML(articles)
	} else {
		slog.Warn("Market news unavailable", "error", err)
	}

	date := time.Now().Format("January 2, 2006")
	subject := fmt.Sprintf("Signalist Daily Market Briefing — %s", date)

	published := 0
	for _, user := range users {
		entries, err := store.List(ctx, user.ID)
		if err != nil {
			slog.Error("Watchlist lookup failed", "user_id", user.ID, "error", err)
			continue
		}
		tracked := make([]string, 0, len(entries))
		for _, e := range entries {
			tracked = append(tracked, e.Symbol)
		}

		symbols := digest.SymbolsFor(tracked)
		snaps := client.FetchQuotes(ctx, symbols)
		d := digest.Compose(symbols, snaps)

		html, err := digest.Render(d, date, newsHTML, baseURL)
		if err != nil {
			slog.Error("Digest render failed", "user_id", user.ID, "error", err)
			continue
		}

		if err := publisher.Publish(digest.Email{To: user.Email, Subject: subject, HTML: html}); err != nil {
			slog.Error("Digest publish failed", "user_id", user.ID, "error", err)
			continue
		}
		published++
	}

	slog.Info("Digest run complete", "recipients", len(users), "published", published)
	return nil
}
