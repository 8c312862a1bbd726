package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/signalist/signalist/internal/digest"
	"github.com/signalist/signalist/internal/mailer"
	"github.com/signalist/signalist/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}
	logger.Init()

	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		kafkaBrokers = "localhost:9092"
	}
	brokers := strings.Split(kafkaBrokers, ",")

	kafkaTopic := os.Getenv("KAFKA_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = digest.DefaultTopic
	}

	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	smtpPort := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			smtpPort = p
		}
	}
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	if smtpUser == "" || smtpPass == "" {
		slog.Error("SMTP_USERNAME and SMTP_PASSWORD must be set")
		os.Exit(1)
	}

	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     smtpHost,
		Port:     smtpPort,
		Username: smtpUser,
		Password: smtpPass,
		From:     os.Getenv("SMTP_FROM"),
	})

	consumer := mailer.NewConsumer(brokers, kafkaTopic, sender)
	if err := consumer.Start(); err != nil {
		slog.Error("Failed to start mailer consumer", "error", err)
		os.Exit(1)
	}
	slog.Info("Mailer running", "topic", kafkaTopic)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	sig := <-stop
	slog.Info("Shutdown signal received", "signal", sig)
	consumer.Stop()
	slog.Info("Mailer stopped")
}
