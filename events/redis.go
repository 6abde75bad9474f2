package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisPublisher struct {
	client *redis.Client
	prefix string
}

// CreateRedisPublisher publishes notifications to redis so that other server
// instances and external consumers can relay them.
func CreateRedisPublisher(client *redis.Client, prefix string) Publisher {
	return &redisPublisher{
		client: client,
		prefix: prefix,
	}
}

func (p *redisPublisher) Name() string {
	return "redis"
}

func (p *redisPublisher) Channel(channelKey string) string {
	if p.prefix == "" {
		return channelKey
	}
	return fmt.Sprintf("%s:%s", p.prefix, channelKey)
}

func (p *redisPublisher) Publish(ctx context.Context, notification Notification) error {
	message, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.Channel(notification.ChannelKey), message).Err()
}
