package components

import (
	"context"
	"log/slog"

	"redemption-service/internal/infra/audit"
	"redemption-service/internal/infra/cache"
	"redemption-service/internal/pkg/config"
	"redemption-service/internal/usecase/queries"
	"redemption-service/internal/usecase/shared"

	"go.uber.org/fx"
)

var IntegrationModule = fx.Module("integration",
	fx.Provide(
		NewCaches,
		NewAuditSink,
	),
)

type Caches struct {
	fx.Out

	Codes            queries.CodeCache
	Stats            queries.StatsCache
	CodeInvalidator  shared.CodeInvalidator
	StatsInvalidator shared.StatsInvalidator
}

// NewCaches falls back to cache.Nop without REDIS_ADDR.
func NewCaches(lc fx.Lifecycle, cfg config.Config) (Caches, error) {
	if cfg.Redis.Addr == "" {
		slog.Info("redis disabled; code and stats caching is off")
		return Caches{Codes: cache.Nop{}, Stats: cache.Nop{}, CodeInvalidator: cache.Nop{}, StatsInvalidator: cache.Nop{}}, nil
	}

	client, cleanup, err := cache.Connect(cfg.Redis)
	if err != nil {
		return Caches{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	c := cache.NewRedisCache(client, cfg.Redis)
	return Caches{Codes: c, Stats: c, CodeInvalidator: c, StatsInvalidator: c}, nil
}

// NewAuditSink writes to Kafka when brokers are configured, else to the log.
func NewAuditSink(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.AuditSink {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("kafka disabled; audit events go to the log")
		return audit.NewLogSink(logger)
	}

	sink := audit.NewKafkaSink(audit.NewKafkaWriter(cfg.Kafka))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return sink.Close()
		},
	})
	return sink
}
