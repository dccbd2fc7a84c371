package metrics

import (
	"context"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
)

// Tracer creates spans around step executions and chunk attempts.
// The returned end function finishes the span; callers defer it.
type Tracer interface {
	// StartExecutionSpan starts a span covering the whole step execution.
	StartExecutionSpan(ctx context.Context, execution *model.Execution) (context.Context, func())

	// StartChunkSpan starts a span covering one chunk attempt.
	StartChunkSpan(ctx context.Context, stepName string) (context.Context, func())

	// RecordError records err on the span active in ctx.
	RecordError(ctx context.Context, err error)
}
