package components

import (
	"redemption-service/internal/handler"
	"redemption-service/internal/handler/api"
	"redemption-service/internal/handler/middleware"
	"redemption-service/internal/pkg/metrics"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCodeHandler,
		api.NewRedemptionHandler,
		api.NewSellerHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	codes *api.CodeHandler,
	redemptions *api.RedemptionHandler,
	sellers *api.SellerHandler,
	admin *api.AdminHandler,
	auth *middleware.AuthMiddleware,
	prom *metrics.Prometheus,
) handler.Handlers {
	return handler.Handlers{
		Codes:       codes,
		Redemptions: redemptions,
		Sellers:     sellers,
		Admin:       admin,
		Auth:        auth,
		Metrics:     prom.Handler(),
	}
}
