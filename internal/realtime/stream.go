package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stream delivers mutation events for a named collection. Delivery is
// at-most-once and best-effort; there is no acknowledgment or offset
// protocol.
type Stream interface {
	Subscribe(ctx context.Context, collection string) (Subscription, error)
}

// Subscription is a live event feed. Close is idempotent and releases the
// underlying transport resources; the Events channel is closed afterwards.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// RedisStream implements Stream over redis pub/sub, the transport the
// external CRUD system publishes ticket mutations on.
type RedisStream struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStream wraps a connected client.
func NewRedisStream(client *redis.Client, logger *zap.Logger) *RedisStream {
	return &RedisStream{client: client, logger: logger}
}

// Subscribe opens a pub/sub subscription on the collection channel and
// decodes messages into Events. Malformed payloads are logged and skipped.
func (s *RedisStream) Subscribe(ctx context.Context, collection string) (Subscription, error) {
	pubsub := s.client.Subscribe(ctx, collection)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.logger.Warn("dropping malformed mutation event",
					zap.String("collection", collection),
					zap.Error(err))
				continue
			}
			event.IngestID = uuid.NewString()
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	s.logger.Info("subscribed to mutation stream", zap.String("collection", collection))
	return &redisSubscription{pubsub: pubsub, events: out}, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events <-chan Event
}

func (s *redisSubscription) Events() <-chan Event {
	return s.events
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}
