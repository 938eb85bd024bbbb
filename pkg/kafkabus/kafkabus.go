package kafkabus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	writeTimeout = 5 * time.Second
	batchTimeout = 10 * time.Millisecond
)

// Config holds Kafka connection details.
type Config struct {
	Brokers []string
	Topic   string
	// Logger receives delivery failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Writer publishes JSON events to a single topic.
type Writer struct {
	writer *kafka.Writer
}

// NewWriter creates a Writer. Connections are made lazily by kafka-go on first write.
// Writes are asynchronous: PublishEvent only enqueues, and delivery failures are logged.
func NewWriter(cfg Config) (*Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka: topic is empty")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			WriteTimeout:           writeTimeout,
			BatchTimeout:           batchTimeout,
			Async:                  true,
			Completion:             logFailures(logger, cfg.Topic),
			AllowAutoTopicCreation: true,
		},
	}, nil
}

// PublishEvent enqueues event keyed by key, so events of one document keep their order.
func (w *Writer) PublishEvent(ctx context.Context, key string, event any) error {
	msg, err := newMessage(key, event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

// Close flushes pending writes and releases connections.
func (w *Writer) Close() error {
	return w.writer.Close()
}

func logFailures(logger *slog.Logger, topic string) func([]kafka.Message, error) {
	return func(messages []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, m := range messages {
			logger.Warn("failed to deliver event", "topic", topic, "key", string(m.Key), "error", err)
		}
	}
}

func newMessage(key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}, nil
}
