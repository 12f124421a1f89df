package events

import (
	"context"
	"encoding/json"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/redis/go-redis/v9"
)

type redisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher publishes every event as JSON on its own channel.
func NewRedisPublisher(rdb *redis.Client) Publisher {
	return &redisPublisher{
		rdb: rdb,
	}
}

func (p *redisPublisher) Publish(ctx context.Context, msg dto.EventMsg) error {
	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.rdb.Publish(ctx, EventChannel(msg.Type), msgJSON).Err()
}

func (p *redisPublisher) Close() error {
	return p.rdb.Close()
}
