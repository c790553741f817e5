package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	platformconfig "github.com/qolzam/telar/apps/feed/internal/platform/config"
)

// NewDispatcher creates the dispatcher selected by NOTIFICATIONS_BACKEND
func NewDispatcher(ctx context.Context, cfg *platformconfig.Config) (Dispatcher, error) {
	switch cfg.Notifications.Backend {
	case platformconfig.NotificationsBackendLog, "":
		return NewLogDispatcher(), nil
	case platformconfig.NotificationsBackendNone:
		return NoopDispatcher{}, nil
	case platformconfig.NotificationsBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis for notifications: %w", err)
		}
		return NewRedisDispatcher(client, cfg.Notifications.RedisChannel), nil
	case platformconfig.NotificationsBackendAMQP:
		d, err := DialAMQPDispatcher(cfg.Notifications.AMQPURL, cfg.Notifications.AMQPQueue)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown notifications backend: %s", cfg.Notifications.Backend)
	}
}
