// Package metrics abstracts metric collection and tracing for the batch
// engine, so the engine can be wired to Prometheus / OpenTelemetry backends
// or run with no-op implementations in tests.
package metrics

import (
	"context"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
)

// MetricRecorder records item and chunk level events of a step execution.
// Implementations must be safe for concurrent use.
type MetricRecorder interface {
	// RecordExecutionStart records the start of a step execution.
	RecordExecutionStart(ctx context.Context, execution *model.Execution)

	// RecordExecutionEnd records the end of a step execution, including its
	// final status.
	RecordExecutionEnd(ctx context.Context, execution *model.Execution)

	// RecordItemsRead records count items read in the named step.
	RecordItemsRead(ctx context.Context, stepName string, count int)

	// RecordItemsWritten records count items written in the named step.
	RecordItemsWritten(ctx context.Context, stepName string, count int)

	// RecordItemsFiltered records count items dropped by the processor.
	RecordItemsFiltered(ctx context.Context, stepName string, count int)

	// RecordReadSkips records count malformed records skipped by the reader.
	RecordReadSkips(ctx context.Context, stepName string, count int)

	// RecordChunkCommit records a successfully committed chunk of count items.
	RecordChunkCommit(ctx context.Context, stepName string, count int)

	// RecordChunkRollback records a failed chunk attempt.
	RecordChunkRollback(ctx context.Context, stepName string)
}
