package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"confidencevoice/internal/retry"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consumer follows the order topic and records order activity. It never touches
// carts: bought lines leave the cart inside the checkout transaction, so replaying
// the topic is harmless.
type Consumer struct {
	reader MessageReader
	policy retry.Policy
}

// NewConsumer paces failed reads with the schedule of policy.
func NewConsumer(reader MessageReader, policy retry.Policy) *Consumer {
	return &Consumer{reader: reader, policy: policy}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	wait := c.policy.BackOff()
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				logger.Info().Msg("order event consumer stopped")
				return
			}
			delay := wait.NextBackOff()
			logger.Error().Err(err).Msgf("Error reading order event, retrying in %s", delay)
			if !sleep(ctx, delay) {
				logger.Info().Msg("order event consumer stopped")
				return
			}
			continue
		}
		wait.Reset()

		if err := c.processMessage(msg); err != nil {
			logger.Error().Err(err).Msgf("Error processing order event %s", string(msg.Key))
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d < 0 {
		d = 0
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *Consumer) processMessage(msg kafka.Message) error {
	var event OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}

	switch event.Kind {
	case KindCreated:
		source := "buy now"
		if event.FromCart {
			source = "cart"
		}
		logger.Info().Msgf("Order %s placed by user %d from %s: %d items, total %s", event.OrderID, event.UserID, source, len(event.Items), event.NetTotal)
	case KindStatusChanged:
		logger.Info().Msgf("Order %s is now %s", event.OrderID, event.Status)
	default:
		logger.Warn().Msgf("Unknown order event kind: %s", event.Kind)
	}
	return nil
}
