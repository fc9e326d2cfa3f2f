// Package messaging implements event bus functionality for the Campus Schedule Hub.
package messaging

import (
	"context"

	rediscache "github.com/campus-hub/campus-schedule-hub/internal/infrastructure/persistence/redis"
)

// ══════════════════════════════════════════════════════════════════════════════
// REDIS CLIENT ADAPTER
// ══════════════════════════════════════════════════════════════════════════════

// cacheRedisClient adapts the persistence-layer Cache to the RedisClient
// interface the event bus expects.
type cacheRedisClient struct {
	cache *rediscache.Cache
}

// NewCacheRedisClient wraps a Cache for use by RedisEventBus. The cache
// stays owned by the caller; Close here is a no-op.
func NewCacheRedisClient(cache *rediscache.Cache) RedisClient {
	return &cacheRedisClient{cache: cache}
}

// Publish sends a message to a Redis channel. The bus hands over
// already-serialized JSON, so this goes to the raw client rather than
// Cache.Publish, which would encode the payload a second time.
func (c *cacheRedisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	return c.cache.Client().Publish(ctx, channel, message).Err()
}

// Subscribe converts a Redis Pub/Sub subscription into a message channel.
func (c *cacheRedisClient) Subscribe(ctx context.Context, channels ...string) (<-chan RedisMessage, error) {
	pubsub := c.cache.Subscribe(ctx, channels...)

	// Force the subscription to be established before returning.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan RedisMessage)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- RedisMessage{Channel: msg.Channel, Payload: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close is a no-op; the underlying cache is shared and closed by its owner.
func (c *cacheRedisClient) Close() error {
	return nil
}
