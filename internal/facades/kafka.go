package facades

import (
	"context"
	"encoding/json"

	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=kafka.go -destination=kafka_mock.go -package=facades

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// KafkaPushFacade publishes notifications to a Kafka topic named after the channel.
type KafkaPushFacade struct {
	writer KafkaWriter
}

// NewKafkaPushFacade creates a new facade with a Kafka writer.
func NewKafkaPushFacade(writer KafkaWriter) *KafkaPushFacade {
	return &KafkaPushFacade{writer: writer}
}

// Publish writes one record keyed by message id, with the event name in a header.
func (f *KafkaPushFacade) Publish(ctx context.Context, channel, event string, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic:   channel,
		Key:     []byte(n.MessageID),
		Value:   data,
		Headers: []kafka.Header{{Key: "event", Value: []byte(event)}},
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish notification to Kafka",
			"topic", channel, "event", event, "message_id", n.MessageID, "error", err)
		return err
	}

	logger.Log.Infow("notification published to Kafka",
		"topic", channel, "event", event, "message_id", n.MessageID)
	return nil
}

// Close closes the underlying writer.
func (f *KafkaPushFacade) Close() error {
	return f.writer.Close()
}
