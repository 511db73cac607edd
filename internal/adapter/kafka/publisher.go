// Package kafka publishes completed simulation results to a sink topic for
// downstream consumers (dashboards, archival). Publishing is optional and
// never fails a simulation request.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/climate-forecast/internal/config"
	"github.com/couchcryptid/climate-forecast/internal/simulate"
)

// Publisher produces simulation results to a Kafka topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured results topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaResultsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishResult serializes and publishes one simulation result.
func (p *Publisher) PublishResult(ctx context.Context, result simulate.Result) error {
	msg, err := serializeResult(result)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeResult marshals a simulation result into a Kafka message. The key
// groups messages by model and target year so compacted topics keep the
// latest run per combination.
func serializeResult(result simulate.Result) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize simulation result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%s-%d", result.Model, result.TargetYear)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "model", Value: []byte(result.Model)},
			{Key: "generated_at", Value: []byte(result.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
