package components

import (
	"carmarket-engine/internal/handler"
	"carmarket-engine/internal/handler/api"
	"carmarket-engine/internal/handler/middleware"
	"carmarket-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewNegotiationHandler,
		NewPrincipalMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewPrincipalMiddleware(cfg config.Config) *middleware.PrincipalMiddleware {
	return middleware.NewPrincipalMiddleware(cfg.Gateway)
}
