package kafka

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/couchcryptid/asteroid-impact-service/internal/config"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces simulation events to a Kafka topic.
// It implements simulation.EventPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured simulation topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes a simulation event and writes it keyed by simulation ID.
func (w *Writer) Publish(ctx context.Context, event domain.SimulationEvent) error {
	out, err := domain.SerializeSimulationEvent(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, toMessage(out)); err != nil {
		return err
	}
	w.logger.Debug("simulation event published", "id", event.ID, "kind", event.Kind, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage maps an OutputEvent onto a Kafka message. Headers are sorted by
// key so messages are reproducible.
func toMessage(out domain.OutputEvent) kafkago.Message {
	msg := kafkago.Message{
		Key:   out.Key,
		Value: out.Value,
	}
	for _, k := range slices.Sorted(maps.Keys(out.Headers)) {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: k, Value: []byte(out.Headers[k])})
	}
	return msg
}
