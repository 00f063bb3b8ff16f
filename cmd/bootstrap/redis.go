package bootstrap

import (
	"context"

	"carmarket-engine/internal/events"
	"carmarket-engine/internal/infra/realtime"
	"carmarket-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRoomPublisher,
	),
)

// NewRoomPublisher wires the realtime fan-out transport. With Redis disabled
// the engine still runs; events are routed and dropped at the publisher.
func NewRoomPublisher(lc fx.Lifecycle, cfg config.Config) events.RoomPublisher {
	if cfg.Redis.Disabled {
		return events.NewNopPublisher()
	}

	client := realtime.NewClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return realtime.NewRedisPublisher(client)
}
