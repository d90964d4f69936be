package services

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines the interface for writing messages to Kafka.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AccountEventPublisher announces account changes.
type AccountEventPublisher interface {
	Publish(ctx context.Context, eventType string, userID uuid.UUID, subjectID string)
}

// EventPublisher publishes account events to Kafka. Publishing is best-effort:
// failures are logged and never reach the caller.
type EventPublisher struct {
	writer KafkaWriter
	now    func() time.Time
}

// NewEventPublisher creates a publisher. A nil writer disables publishing.
func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer, now: time.Now}
}

// Publish writes one event keyed by the account id.
func (p *EventPublisher) Publish(ctx context.Context, eventType string, userID uuid.UUID, subjectID string) {
	event := models.AccountEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID.String(),
		SubjectID: subjectID,
		Timestamp: p.now().Unix(),
	}

	if p.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", eventType)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal account event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish account event to Kafka", "event_id", event.EventID, "type", eventType, "error", err)
	} else {
		logger.Log.Infow("Account event published to Kafka", "event_id", event.EventID, "type", eventType)
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, uuid.UUID, string) {}

func publisherOrNoop(p AccountEventPublisher) AccountEventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
