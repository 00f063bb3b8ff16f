package bootstrap

import (
	"carmarket-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	components.RepositoryModule,
	components.EventsModule,
	components.UseCaseModule,
	components.HandlerModule,
)
