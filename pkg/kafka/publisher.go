// Package kafka publishes catalog events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes every event to a single topic, keyed by the event key when present.
// The event subject travels in the "subject" header.
type Publisher struct {
	writer MessageWriter
}

// NewWriter builds a synchronous kafka.Writer for the configured topic.
func NewWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
	}
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, event messaging.Event) error {
	data, err := event.Payload()
	if err != nil {
		return fmt.Errorf("failed to get event payload: %w", err)
	}
	msg := kafka.Message{
		Value:   data,
		Headers: []kafka.Header{{Key: "subject", Value: []byte(event.Subject())}},
	}
	if keyed, ok := event.(messaging.KeyedEvent); ok {
		msg.Key = []byte(keyed.Key())
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s to kafka: %w", event.Subject(), err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
