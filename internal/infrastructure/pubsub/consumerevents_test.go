package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
	got    chan struct{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{got: make(chan struct{}, 10)}
}

func (p *recordingPublisher) Publish(e events.DomainEvent) error {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
	select {
	case p.got <- struct{}{}:
	default:
	}
	return nil
}

func (p *recordingPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		_ = p.Publish(e)
	}
	return nil
}

func TestDecode_RestoresConcreteEvent(t *testing.T) {
	data, err := encode(consumer.NewGuestMigratedEvent(3, "g1", "host-a", "host-b"))
	require.NoError(t, err)

	event, err := decode(data)
	require.NoError(t, err)

	migrated, ok := event.(*consumer.GuestMigratedEvent)
	require.True(t, ok)
	assert.Equal(t, consumer.EventTypeGuestMigrated, migrated.GetEventType())
	assert.Equal(t, "g1", migrated.GetAggregateID())
	assert.Equal(t, "host-a", migrated.FromHost)
	assert.Equal(t, "host-b", migrated.ToHost)
	assert.Equal(t, uint(3), migrated.OwnerID)
}

func TestDecode_RejectsUnknownOrBrokenMessages(t *testing.T) {
	_, err := decode([]byte(`{"type":"pool.created","payload":{}}`))
	assert.ErrorContains(t, err, "unknown event type")

	_, err = decode([]byte(`not json`))
	assert.ErrorContains(t, err, "invalid envelope")

	_, err = decode([]byte(`{"type":"guest.migrated","payload":"x"}`))
	assert.Error(t, err)
}

func TestRedisConsumerEventBus_ForwardsToLocalPublisher(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	bus := NewRedisConsumerEventBus(client, logger.NewNopLogger())
	local := newRecordingPublisher()

	done := make(chan error, 1)
	go func() { done <- bus.Subscribe(ctx, local) }()

	// Publish until the subscription is live; Pub/Sub drops messages sent
	// before it.
	deadline := time.After(5 * time.Second)
	for received := false; !received; {
		require.NoError(t, bus.Publish(consumer.NewComplianceChangedEvent("c-1", "valid", "abc")))
		select {
		case <-local.got:
			received = true
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("event was not forwarded")
		}
	}

	local.mu.Lock()
	changed, ok := local.events[0].(*consumer.ComplianceChangedEvent)
	local.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, "c-1", changed.ConsumerUUID)
	assert.Equal(t, "valid", changed.Status)

	cancel()
	assert.NoError(t, <-done)
}
