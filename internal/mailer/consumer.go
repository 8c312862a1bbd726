package mailer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/signalist/signalist/internal/digest"
)

// Consumer reads rendered digests from Kafka and hands them to the sender.
type Consumer struct {
	brokers  []string
	topic    string
	sender   Sender
	done     chan struct{}
	wg       sync.WaitGroup
	consumer sarama.Consumer
}

// NewConsumer creates a Kafka consumer for the mailer worker.
func NewConsumer(brokers []string, topic string, sender Sender) *Consumer {
	return &Consumer{
		brokers: brokers,
		topic:   topic,
		sender:  sender,
		done:    make(chan struct{}),
	}
}

// Start begins consuming digest emails and delivering them.
func (c *Consumer) Start() error {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(c.brokers, config)
	if err != nil {
		return err
	}
	c.consumer = consumer

	partitionConsumer, err := consumer.ConsumePartition(c.topic, 0, sarama.OffsetNewest)
	if err != nil {
		consumer.Close()
		return err
	}

	slog.Info("Mailer connected to Kafka", "topic", c.topic)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer partitionConsumer.Close()

		// Metrics
		delivered := 0
		failed := 0
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-c.done:
				slog.Info("Mailer shutting down")
				return

			case msg := <-partitionConsumer.Messages():
				if err := c.deliver(msg.Value); err != nil {
					slog.Error("Digest delivery failed", "error", err)
					failed++
					continue
				}
				delivered++

			case err := <-partitionConsumer.Errors():
				slog.Error("Kafka error", "error", err)

			case <-ticker.C:
				if delivered > 0 || failed > 0 {
					slog.Info("Mailer stats", "delivered", delivered, "failed", failed)
					delivered = 0
					failed = 0
				}
			}
		}
	}()

	return nil
}

// deliver decodes one digest message and sends it.
func (c *Consumer) deliver(payload []byte) error {
	var email digest.Email
	if err := json.Unmarshal(payload, &email); err != nil {
		return fmt.Errorf("invalid digest message: %w", err)
	}
	if email.To == "" {
		return fmt.Errorf("digest message has no recipient")
	}

	if err := c.sender.Send(email); err != nil {
		return err
	}
	slog.Info("Digest email delivered", "to", email.To)
	return nil
}

// Stop gracefully shuts down the consumer.
func (c *Consumer) Stop() {
	close(c.done)
	c.wg.Wait()
	if c.consumer != nil {
		c.consumer.Close()
	}
}
