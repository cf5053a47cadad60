package bootstrap

import (
	"context"

	"redemption-service/internal/pkg/config"
	"redemption-service/internal/pkg/metrics"
	"redemption-service/internal/pkg/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		metrics.NewPrometheus,
		func(p *metrics.Prometheus) metrics.Recorder { return p },
		NewTracerProvider,
	),
	// the provider registers itself globally; force construction
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

// NewTracerProvider returns nil when no Jaeger endpoint is configured; spans
// then go to the otel no-op tracer.
func NewTracerProvider(lc fx.Lifecycle, cfg config.Config) (*sdktrace.TracerProvider, error) {
	tp, err := tracing.InitTracerProvider(cfg.Tracing)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracing.Shutdown(ctx, tp)
		},
	})
	return tp, nil
}
