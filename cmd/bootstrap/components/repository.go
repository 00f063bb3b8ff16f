package components

import (
	"carmarket-engine/internal/infra/repository"
	"carmarket-engine/internal/infra/uow"
	"carmarket-engine/internal/usecase/commands"
	"carmarket-engine/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repository.NewCarRepository,
			fx.As(new(commands.CarReader)),
			fx.As(new(queries.CarReadStore)),
		),
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ConflictIndex)),
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			repository.NewMessageRepository,
			fx.As(new(queries.OfferReadStore)),
		),
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) repository.DBTX {
	return pool
}
