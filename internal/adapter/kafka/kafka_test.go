package kafka

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wind-analytics-service/internal/config"
	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	fb := domain.Feedback{
		ID:              "6f1c2a8e-0000-4000-8000-000000000001",
		Rating:          domain.RatingGood,
		FeatureRequests: "Offshore potential",
		SubmittedAt:     now,
	}

	msg, err := serializeToMessage(fb)
	require.NoError(t, err)

	assert.Equal(t, []byte(fb.ID), msg.Key)
	assert.Contains(t, string(msg.Value), `"rating":"Good"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "rating", msg.Headers[0].Key)
	assert.Equal(t, []byte("Good"), msg.Headers[0].Value)
	assert.Equal(t, "submitted_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var decoded domain.Feedback
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, fb, decoded)
}

func TestSerializeToMessage_OmitsEmptyOptionalFields(t *testing.T) {
	msg, err := serializeToMessage(domain.Feedback{ID: "id-1", Rating: domain.RatingPoor})
	require.NoError(t, err)

	assert.NotContains(t, string(msg.Value), "email")
	assert.NotContains(t, string(msg.Value), "data_issues")
}

func TestNewFeedbackWriter(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:  []string{"broker1:9092", "broker2:9092"},
		FeedbackTopic: "dashboard-feedback",
	}

	w := NewFeedbackWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "dashboard-feedback", w.writer.Topic)
	assert.Equal(t, kafkago.RequireAll, w.writer.RequiredAcks)
}
