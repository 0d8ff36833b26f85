package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"confidencevoice/internal/entity"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	KindCreated       = "created"
	KindStatusChanged = "status"
)

// OrderEvent is the payload written to the order topic.
type OrderEvent struct {
	EventID   string            `json:"event_id"`
	Kind      string            `json:"kind"`
	OrderID   string            `json:"order_id"`
	UserID    int               `json:"user_id"`
	FromCart  bool              `json:"from_cart"`
	NetTotal  decimal.Decimal   `json:"net_total"`
	Status    string            `json:"status"`
	Items     []entity.LineItem `json:"items,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func NewOrderEvent(kind, orderID string, userID int) OrderEvent {
	return OrderEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		OrderID:   orderID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

// MessageKey keeps every event of one order on the same partition: order-created-<id>.
func (e OrderEvent) MessageKey() string {
	return fmt.Sprintf("order-%s-%s", e.Kind, e.OrderID)
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.MessageKey()),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.MessageKey(), err)
	}
	return nil
}
