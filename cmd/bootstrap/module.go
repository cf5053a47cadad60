package bootstrap

import (
	"redemption-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	ObservabilityModule,
	components.PersistenceModule,
	components.IntegrationModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.HandlerModule,
)
