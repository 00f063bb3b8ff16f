package components

import (
	"context"
	"log/slog"

	"carmarket-engine/internal/events"
	"carmarket-engine/internal/pkg/config"
	"carmarket-engine/internal/usecase/commands"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		fx.Annotate(
			NewEventRouter,
			fx.As(new(commands.EventDispatcher)),
		),
	),
)

func NewEventRouter(
	lc fx.Lifecycle,
	cfg config.Config,
	pub events.RoomPublisher,
	logger *slog.Logger,
) *events.Router {
	router := events.NewRouter(pub, cfg.Events.QueueSize, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			router.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return router.Stop(ctx)
		},
	})

	return router
}
