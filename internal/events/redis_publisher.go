package events

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Publisher delivers serialized events to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisPublisher publishes events with Redis PUBLISH.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher wraps client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends payload to channel.
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if p == nil || p.client == nil {
		return errors.New("redis client not configured")
	}
	return p.client.Publish(ctx, channel, payload).Err()
}
