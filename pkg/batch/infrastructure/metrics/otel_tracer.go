package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
)

const tracerName = "github.com/riptidekit/riptide"

// OpenTelemetryTracer implements metrics.Tracer on top of the global
// OpenTelemetry tracer provider. Exporter/provider setup is left to the
// application.
type OpenTelemetryTracer struct {
	tracer trace.Tracer
}

// NewOpenTelemetryTracer creates a tracer using the globally registered
// provider.
func NewOpenTelemetryTracer() *OpenTelemetryTracer {
	return &OpenTelemetryTracer{tracer: otel.Tracer(tracerName)}
}

func (t *OpenTelemetryTracer) StartExecutionSpan(ctx context.Context, execution *model.Execution) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, fmt.Sprintf("execution %s", execution.Name),
		trace.WithAttributes(
			attribute.String("batch.step.name", execution.Name),
			attribute.Int64("batch.execution.id", execution.ID),
		))
	return ctx, func() {
		span.SetAttributes(attribute.String("batch.execution.status", string(execution.Status)))
		span.End()
	}
}

func (t *OpenTelemetryTracer) StartChunkSpan(ctx context.Context, stepName string) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, fmt.Sprintf("chunk %s", stepName),
		trace.WithAttributes(attribute.String("batch.step.name", stepName)))
	return ctx, func() { span.End() }
}

func (t *OpenTelemetryTracer) RecordError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
