package digest

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
)

// DefaultTopic is the Kafka topic carrying rendered digest emails from the
// digest job to the mailer.
const DefaultTopic = "digest_emails"

// Email is one rendered briefing, keyed by recipient on the wire so a
// recipient's digests stay ordered.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Publisher hands rendered digests to Kafka for the mailer worker.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher creates a Kafka producer for digest emails.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create digest producer: %w", err)
	}

	return &Publisher{producer: producer, topic: topic}, nil
}

// Publish sends one rendered digest to the mail topic.
func (p *Publisher) Publish(email Email) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to encode digest email: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(email.To),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish digest email: %w", err)
	}

	slog.Info("Digest email published", "to", email.To, "partition", partition, "offset", offset)
	return nil
}

// Close shuts down the Kafka producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
