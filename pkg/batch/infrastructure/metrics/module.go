package metrics

import (
	"go.uber.org/fx"

	coremetrics "github.com/riptidekit/riptide/pkg/batch/core/metrics"
)

// Module provides the Prometheus-backed recorder and the OpenTelemetry
// tracer as the engine's metric surfaces.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(NewPrometheusRecorder, fx.As(new(coremetrics.MetricRecorder))),
		fx.Annotate(NewOpenTelemetryTracer, fx.As(new(coremetrics.Tracer))),
	),
)
