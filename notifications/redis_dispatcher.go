package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// redisPublisher is the subset of redis.UniversalClient the dispatcher uses
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisDispatcher publishes notifications as JSON on a Redis pub/sub channel
type RedisDispatcher struct {
	client  redisPublisher
	channel string
}

// NewRedisDispatcher creates a dispatcher publishing to channel
func NewRedisDispatcher(client redisPublisher, channel string) *RedisDispatcher {
	return &RedisDispatcher{client: client, channel: channel}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := d.client.Publish(ctx, d.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to %s: %w", d.channel, err)
	}
	return nil
}

func (d *RedisDispatcher) Close() error {
	return d.client.Close()
}
