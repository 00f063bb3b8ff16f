package realtime

import (
	"context"

	"carmarket-engine/internal/pkg/config"
	"carmarket-engine/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher delivers room events over Redis pub/sub. Room ids are
// channel names, so any subscriber transport listening on the channel gets
// the fan-out; the engine itself holds no subscriber state.
type RedisPublisher struct {
	client *redis.Client
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) PublishToRoom(ctx context.Context, roomID, eventName string, payload []byte) error {
	// Frame as "event\n<json>" so subscribers can route without a second
	// decode of the payload.
	msg := make([]byte, 0, len(eventName)+1+len(payload))
	msg = append(msg, eventName...)
	msg = append(msg, '\n')
	msg = append(msg, payload...)

	if err := p.client.Publish(ctx, roomID, msg).Err(); err != nil {
		return errs.Wrap(err, "failed to publish to room "+roomID)
	}
	return nil
}
