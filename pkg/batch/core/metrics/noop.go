package metrics

import (
	"context"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
)

// NoopMetricRecorder is a MetricRecorder that discards everything.
type NoopMetricRecorder struct{}

// NewNoopMetricRecorder creates a new NoopMetricRecorder.
func NewNoopMetricRecorder() *NoopMetricRecorder {
	return &NoopMetricRecorder{}
}

func (r *NoopMetricRecorder) RecordExecutionStart(ctx context.Context, execution *model.Execution) {
}
func (r *NoopMetricRecorder) RecordExecutionEnd(ctx context.Context, execution *model.Execution) {}
func (r *NoopMetricRecorder) RecordItemsRead(ctx context.Context, stepName string, count int)    {}
func (r *NoopMetricRecorder) RecordItemsWritten(ctx context.Context, stepName string, count int) {}
func (r *NoopMetricRecorder) RecordItemsFiltered(ctx context.Context, stepName string, count int) {
}
func (r *NoopMetricRecorder) RecordReadSkips(ctx context.Context, stepName string, count int) {}
func (r *NoopMetricRecorder) RecordChunkCommit(ctx context.Context, stepName string, count int) {}
func (r *NoopMetricRecorder) RecordChunkRollback(ctx context.Context, stepName string)          {}

// NoopTracer is a Tracer that produces no spans.
type NoopTracer struct{}

// NewNoopTracer creates a new NoopTracer.
func NewNoopTracer() *NoopTracer {
	return &NoopTracer{}
}

func (t *NoopTracer) StartExecutionSpan(ctx context.Context, execution *model.Execution) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoopTracer) StartChunkSpan(ctx context.Context, stepName string) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoopTracer) RecordError(ctx context.Context, err error) {}
