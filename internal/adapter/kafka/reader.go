package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmpettit/location-import-service/internal/config"
	"github.com/jmpettit/location-import-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes import jobs from the jobs topic.
// It implements runner.JobSource.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the configured jobs topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaJobsTopic,
		GroupID: cfg.KafkaGroupID,
	})
	return &Reader{reader: r, logger: logger}
}

// FetchJob blocks until the next job message is available or the context is
// cancelled. Offsets are committed explicitly through the event's Commit
// callback once the job has been handled.
func (r *Reader) FetchJob(ctx context.Context) (domain.JobEvent, error) {
	msg, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return domain.JobEvent{}, fmt.Errorf("fetch job message: %w", err)
	}
	return r.mapMessageToJobEvent(msg), nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

func (r *Reader) mapMessageToJobEvent(msg kafkago.Message) domain.JobEvent {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.JobEvent{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Commit: func(ctx context.Context) error {
			return r.reader.CommitMessages(ctx, msg)
		},
	}
}
