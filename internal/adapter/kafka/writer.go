package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/user-locations/internal/config"
	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/observability"
)

// Writer publishes each record of a loaded batch to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured export topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// LoadBatch serializes every record of the batch and publishes them in a
// single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, batch domain.Batch) error {
	if len(batch.Records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(batch.Records))
	for i := range batch.Records {
		msg, err := serializeToMessage(batch, i)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write batch %s: %w", batch.ID, err)
	}
	w.metrics.RecordsExported.Add(float64(len(msgs)))
	w.logger.Info("batch exported", "batch_id", batch.ID, "records", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals the i-th record of a batch into a Kafka message
// keyed by batch id and position.
func serializeToMessage(batch domain.Batch, i int) (kafkago.Message, error) {
	data, err := json.Marshal(batch.Records[i])
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize user record %d: %w", i, err)
	}
	return kafkago.Message{
		Key:   []byte(batch.ID + "-" + strconv.Itoa(i)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "batch_id", Value: []byte(batch.ID)},
			{Key: "fetched_at", Value: []byte(batch.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
