package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/wind-analytics-service/internal/config"
	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

// FeedbackWriter publishes feedback submissions to a Kafka topic.
// It implements dashboard.FeedbackPublisher.
type FeedbackWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewFeedbackWriter creates a Kafka producer for the configured feedback topic.
func NewFeedbackWriter(cfg *config.Config, logger *slog.Logger) *FeedbackWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.FeedbackTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &FeedbackWriter{writer: w, logger: logger}
}

// PublishFeedback serializes fb and writes it synchronously, keyed by its ID.
func (w *FeedbackWriter) PublishFeedback(ctx context.Context, fb domain.Feedback) error {
	msg, err := serializeToMessage(fb)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write feedback %s: %w", fb.ID, err)
	}
	w.logger.Debug("feedback published", "id", fb.ID, "topic", w.writer.Topic)
	return nil
}

func (w *FeedbackWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Feedback into a Kafka message.
func serializeToMessage(fb domain.Feedback) (kafkago.Message, error) {
	data, err := json.Marshal(fb)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize feedback: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(fb.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "rating", Value: []byte(fb.Rating)},
			{Key: "submitted_at", Value: []byte(fb.SubmittedAt.Format(time.RFC3339))},
		},
	}, nil
}
