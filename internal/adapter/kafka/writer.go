package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/quietriver/climate-charts/internal/config"
	"github.com/quietriver/climate-charts/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes earthquake events to a Kafka topic.
// It implements monitor.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured quake topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaQuakeTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes multiple quakes to the topic in a
// single WriteMessages call for efficiency.
func (w *Writer) PublishBatch(ctx context.Context, quakes []domain.Quake) error {
	if len(quakes) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(quakes))
	for i := range quakes {
		msg, err := serializeToMessage(quakes[i])
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

// serializeToMessage marshals a Quake into a Kafka message keyed by event ID,
// so replays of the same event land on the same partition.
func serializeToMessage(q domain.Quake) (kafkago.Message, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize quake: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(q.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_time", Value: []byte(q.Time.Format(time.RFC3339))},
			{Key: "magnitude", Value: []byte(strconv.FormatFloat(q.Magnitude, 'f', -1, 64))},
		},
	}, nil
}
