//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/couchcryptid/climate-forecast/internal/adapter/kafka"
	"github.com/couchcryptid/climate-forecast/internal/config"
	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/observability"
	"github.com/couchcryptid/climate-forecast/internal/series"
	"github.com/couchcryptid/climate-forecast/internal/simulate"
)

const testResultsTopic = "test-forecast-results"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSimulator() *simulate.Simulator {
	return simulate.New(discardLogger(), observability.NewMetricsForTesting())
}

// startKafka launches a single-broker Kafka container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublishResult verifies that a simulation result round-trips through a
// real broker: key, headers, and payload all survive intact.
func TestPublishResult(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testResultsTopic)

	cfg := &config.Config{
		KafkaBrokers:      []string{broker},
		KafkaResultsTopic: testResultsTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	result := simulate.Result{
		Model:      domain.ModelLinear,
		TargetYear: 2050,
		Outcome: domain.PredictionOutcome{
			PredictedTemperature: 27.12,
			Confidence:           0.81,
			Details:              []string{"Linear regression over full history"},
		},
		TrendLine: domain.TrendLine{
			Years:        []string{"2022", "2028", "2050"},
			Temperatures: []float64{26.46, 26.6, 27.12},
		},
		GeneratedAt: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.PublishResult(ctx, result))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testResultsTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from results topic")

	assert.Equal(t, "linear-2050", string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "linear", headers["model"])
	_, err = time.Parse(time.RFC3339, headers["generated_at"])
	assert.NoError(t, err, "generated_at should be valid RFC3339")

	var got simulate.Result
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, result.Model, got.Model)
	assert.Equal(t, result.TargetYear, got.TargetYear)
	assert.InDelta(t, result.Outcome.PredictedTemperature, got.Outcome.PredictedTemperature, 1e-9)
	assert.Equal(t, result.TrendLine.Years, got.TrendLine.Years)
	assert.True(t, got.GeneratedAt.Equal(result.GeneratedAt))
}

// TestPublishSimulatedRun publishes the result of an actual simulation over
// the bundled dataset and verifies it arrives well-formed.
func TestPublishSimulatedRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testResultsTopic)

	cfg := &config.Config{
		KafkaBrokers:      []string{broker},
		KafkaResultsTopic: testResultsTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	simulator := newTestSimulator()
	result := simulator.Run(series.Fallback(), domain.ModelMovingAverage, 2040)
	require.False(t, result.Rejected())

	require.NoError(t, publisher.PublishResult(ctx, result))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testResultsTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err)

	var got simulate.Result
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, domain.ModelMovingAverage, got.Model)
	assert.Equal(t, 2040, got.TargetYear)
	assert.False(t, got.Rejected())
	assert.NotEmpty(t, got.TrendLine.Years)
}
