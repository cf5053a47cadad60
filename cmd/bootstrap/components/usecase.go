package components

import (
	"redemption-service/internal/pkg/clock"
	"redemption-service/internal/pkg/config"
	"redemption-service/internal/pkg/metrics"
	"redemption-service/internal/usecase"
	"redemption-service/internal/usecase/commands"
	"redemption-service/internal/usecase/queries"
	"redemption-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewCoordinator,
		func(c *commands.Coordinator) commands.RedemptionCommands { return c },
		NewReaper,
		func(r *commands.Reaper) commands.ReaperCommands { return r },
		NewAuditRelay,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCodeQueries,
		queries.NewAttributionQueries,
		func(store queries.ReservationReadStore, cfg config.Config) queries.RedemptionQueries {
			return queries.NewRedemptionQueries(store, cfg.Redemption.ReservationTTL)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCoordinator(
	uow shared.UnitOfWork,
	clk clock.Clock,
	cfg config.Config,
	stats shared.StatsInvalidator,
	codes shared.CodeInvalidator,
	recorder metrics.Recorder,
) *commands.Coordinator {
	return commands.NewCoordinator(commands.CoordinatorDeps{
		UoW:      uow,
		Clock:    clk,
		TTL:      cfg.Redemption.ReservationTTL,
		Stats:    stats,
		Codes:    codes,
		Recorder: recorder,
	})
}

func NewReaper(uow shared.UnitOfWork, coordinator *commands.Coordinator, clk clock.Clock, cfg config.Config, recorder metrics.Recorder) *commands.Reaper {
	return commands.NewReaper(uow, coordinator, clk, commands.ReaperConfig{
		TTL:         cfg.Redemption.ReservationTTL,
		Interval:    cfg.Redemption.ReaperInterval,
		BatchSize:   cfg.Redemption.ReaperBatchSize,
		Concurrency: cfg.Redemption.ReaperConcurrency,
	}, recorder)
}

func NewAuditRelay(uow shared.UnitOfWork, sink shared.AuditSink, clk clock.Clock, cfg config.Config, recorder metrics.Recorder) *commands.AuditRelay {
	return commands.NewAuditRelay(uow, sink, clk, commands.AuditRelayConfig{
		Interval:  cfg.Redemption.RelayInterval,
		BatchSize: cfg.Redemption.RelayBatchSize,
	}, recorder)
}
