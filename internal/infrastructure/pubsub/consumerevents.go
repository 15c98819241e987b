// Package pubsub relays consumer domain events between instances over
// Redis Pub/Sub.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/logger"
)

const (
	consumerEventChannel = "candlepin:consumer:events"
	publishTimeout       = 3 * time.Second
)

// envelope is the wire form. Payload is the JSON of the concrete event.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

var decoders = map[string]func() events.DomainEvent{
	consumer.EventTypeGuestMigrated:     func() events.DomainEvent { return &consumer.GuestMigratedEvent{} },
	consumer.EventTypeComplianceChanged: func() events.DomainEvent { return &consumer.ComplianceChangedEvent{} },
}

// RedisConsumerEventBus publishes consumer events to Redis and feeds events
// received from any instance into a local publisher.
type RedisConsumerEventBus struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisConsumerEventBus(client *redis.Client, log logger.Interface) *RedisConsumerEventBus {
	return &RedisConsumerEventBus{client: client, logger: log}
}

func (b *RedisConsumerEventBus) Publish(event events.DomainEvent) error {
	data, err := encode(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := b.client.Publish(ctx, consumerEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish consumer event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("consumer event published",
		"event_type", event.GetEventType(),
		"aggregate_id", event.GetAggregateID(),
	)
	return nil
}

func (b *RedisConsumerEventBus) PublishAll(evts []events.DomainEvent) error {
	for _, event := range evts {
		if err := b.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe blocks until ctx ends, forwarding each received event to local.
// Undecodable messages are logged and dropped.
func (b *RedisConsumerEventBus) Subscribe(ctx context.Context, local events.EventPublisher) error {
	sub := b.client.Subscribe(ctx, consumerEventChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}
	b.logger.Infow("subscribed to consumer events", "channel", consumerEventChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("consumer event subscriber stopped", "reason", ctx.Err())
			return nil
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("consumer event channel closed")
				return nil
			}
			event, err := decode([]byte(msg.Payload))
			if err != nil {
				b.logger.Warnw("dropping consumer event", "error", err)
				continue
			}
			if err := local.Publish(event); err != nil {
				b.logger.Errorw("failed to forward consumer event",
					"event_type", event.GetEventType(),
					"error", err,
				)
			}
		}
	}
}

func encode(event events.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	data, err := json.Marshal(envelope{Type: event.GetEventType(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, nil
}

func decode(data []byte) (events.DomainEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}
	newEvent, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}
	event := newEvent()
	if err := json.Unmarshal(env.Payload, event); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", env.Type, err)
	}
	return event, nil
}
