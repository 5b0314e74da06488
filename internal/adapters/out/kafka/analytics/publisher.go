// Package analytics publishes delivery analytics events to Kafka.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"deliveryops/internal/core/ports"
	"deliveryops/internal/metrics"
)

// messageWriter is the slice of kafka.Writer the publisher depends on.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaAnalyticsPublisher implements AnalyticsPublisher on a Kafka topic.
// Events are keyed by order id so per-order ordering is preserved.
type KafkaAnalyticsPublisher struct {
	writer messageWriter
}

// NewWriter creates the Kafka writer used by the publisher.
func NewWriter(host, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(host),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaAnalyticsPublisher creates a publisher on the given writer.
func NewKafkaAnalyticsPublisher(writer messageWriter) *KafkaAnalyticsPublisher {
	return &KafkaAnalyticsPublisher{writer: writer}
}

// Publish serializes the event and writes it to the analytics topic.
func (p *KafkaAnalyticsPublisher) Publish(ctx context.Context, event ports.AnalyticsEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		metrics.AnalyticsPublishFailuresTotal.Inc()
		return fmt.Errorf("marshal analytics event for order %s: %w", event.OrderID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: eventBytes,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.AnalyticsPublishFailuresTotal.Inc()
		return fmt.Errorf("write analytics event for order %s: %w", event.OrderID, err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *KafkaAnalyticsPublisher) Close() error {
	return p.writer.Close()
}
