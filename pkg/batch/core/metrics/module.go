package metrics

import "go.uber.org/fx"

// NoopModule provides no-op metric and tracing implementations. Applications
// that want real backends use the infrastructure/metrics module instead.
var NoopModule = fx.Options(
	fx.Provide(
		fx.Annotate(NewNoopMetricRecorder, fx.As(new(MetricRecorder))),
		fx.Annotate(NewNoopTracer, fx.As(new(Tracer))),
	),
)
