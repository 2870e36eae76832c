// Package events publishes order lifecycle events to Kafka. Publishing is
// fire and forget: the CRUD path never depends on the broker, failures are
// logged and dropped.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/srm-logistics/delivery-service/internal/config"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated  = "order.created"
	TypeOrderAssigned = "order.assigned"
)

// OrderEvent is the wire format of a lifecycle event.
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    int       `json:"order_id"`
	RiderUID   string    `json:"rider_uid,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Producer struct {
	logger *slog.Logger
	writer *kafka.Writer
}

func NewProducer(logger *slog.Logger, cfg config.Kafka) *Producer {
	return &Producer{
		logger: logger.With(slog.String("component", "events")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *Producer) OrderCreated(ctx context.Context, orderID int) {
	p.publish(ctx, OrderEvent{
		EventID:    uuid.NewString(),
		Type:       TypeOrderCreated,
		OrderID:    orderID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Producer) OrderAssigned(ctx context.Context, orderID int, riderUID string) {
	p.publish(ctx, OrderEvent{
		EventID:    uuid.NewString(),
		Type:       TypeOrderAssigned,
		OrderID:    orderID,
		RiderUID:   riderUID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Producer) publish(ctx context.Context, event OrderEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", slog.Any("error", err), slog.String("type", event.Type))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Type),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			slog.Any("error", err),
			slog.String("type", event.Type),
			slog.Int("order_id", event.OrderID),
		)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
