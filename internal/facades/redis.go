package facades

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

//go:generate mockgen -source=redis.go -destination=redis_mock.go -package=facades

// RedisPublisher is the subset of the Redis client used for pub/sub.
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPushFacade publishes notifications on Redis pub/sub channels.
type RedisPushFacade struct {
	client RedisPublisher
}

// NewRedisPushFacade creates a new facade with a Redis client.
func NewRedisPushFacade(client RedisPublisher) *RedisPushFacade {
	return &RedisPushFacade{client: client}
}

// Publish sends a {"channel","event","data"} envelope to the channel.
func (f *RedisPushFacade) Publish(ctx context.Context, channel, event string, n models.Notification) error {
	data, err := json.Marshal(models.PushEvent{Channel: channel, Event: event, Data: n})
	if err != nil {
		return err
	}

	receivers, err := f.client.Publish(ctx, channel, data).Result()
	if err != nil {
		logger.Log.Errorw("failed to publish notification to Redis",
			"channel", channel, "event", event, "message_id", n.MessageID, "error", err)
		return err
	}

	logger.Log.Infow("notification published to Redis",
		"channel", channel, "event", event, "message_id", n.MessageID, "receivers", receivers)
	return nil
}
