// Package kafka publishes computed solutions to a Kafka sink topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/swashes-solutions/internal/config"
	"github.com/couchcryptid/swashes-solutions/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces solution messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple solutions to the sink topic in
// a single WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, tables []*domain.Table) error {
	if len(tables) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(tables))
	for i, table := range tables {
		msg, err := serializeToMessage(table)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a solution table into a Kafka message keyed by
// the case slug.
func serializeToMessage(table *domain.Table) (kafkago.Message, error) {
	data, err := json.Marshal(table)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize solution %s: %w", table.Case.Key(), err)
	}
	return kafkago.Message{
		Key:   []byte(table.Case.Slug()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dimension", Value: []byte(table.Case.Dimension.String())},
			{Key: "computed_at", Value: []byte(table.ComputedAt.Format(time.RFC3339))},
		},
	}, nil
}
