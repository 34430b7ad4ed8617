package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Event names emitted by the API. Downstream consumers use them to invalidate
// caches and feed analytics.
const (
	EventTicketCreated       = "ticket.created"
	EventTicketStatusChanged = "ticket.status_changed"
	EventTicketFeedbackAdded = "ticket.feedback_added"
	EventMessageSent         = "message.sent"
	EventPaymentToggleSet    = "payment.toggle_set"
)

// SupportEventProducer — interface for emitting support events (mocked in tests).
type SupportEventProducer interface {
	ProduceSupportEvent(ctx context.Context, event string, payload map[string]interface{})
}

// Producer writes support events to a Kafka topic (best-effort, never blocks
// the API response path).
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer returns a producer. With no brokers or an empty topic every
// method is a no-op.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// ProduceSupportEvent sends one event envelope {"event": name, ...payload}.
func (p *Producer) ProduceSupportEvent(ctx context.Context, event string, payload map[string]interface{}) {
	if p.writer == nil {
		return
	}
	msg := map[string]interface{}{"event": event}
	for k, v := range payload {
		msg[k] = v
	}
	body, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("kafka: marshal support event")
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		log.Error().Err(err).Str("event", event).Msg("kafka: write support event")
	}
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
