// Package port defines the capability interfaces the chunk engine is built
// against. The engine treats these as opaque: it never inspects how a reader
// produces items or where a writer sends them.
package port

import (
	"context"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
)

// ItemReader produces items one at a time.
//
// Read returns an ItemWrapper tagging each result: a wrapped item possibly
// accompanied by a count of malformed records skipped to produce it, or the
// end-of-source marker (IsEnd). A non-nil error means the read itself failed
// and the attempt must abort.
type ItemReader[I any] interface {
	Read(ctx context.Context) (model.ItemWrapper[I], error)
}

// ItemProcessor transforms one input item into at most one output item.
// A nil result with a nil error means the item was filtered out: it is
// counted as filtered and produces no output, which is not an error.
type ItemProcessor[I, O any] interface {
	Process(ctx context.Context, item I) (*O, error)
}

// ItemWriter durably writes a batch of items as a unit.
type ItemWriter[O any] interface {
	Write(ctx context.Context, items []O) error
}

// OpenCloser is implemented by components that hold resources spanning an
// execution (cursors, connections, file handles). The step opens such
// components before the first attempt and closes them after the last.
type OpenCloser interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
}

// ChunkListener is notified around each chunk attempt.
type ChunkListener interface {
	BeforeChunk(ctx context.Context, execution *model.Execution)
	AfterChunk(ctx context.Context, execution *model.Execution)
}

// ExecutionListener is notified around the whole step execution.
type ExecutionListener interface {
	BeforeExecution(ctx context.Context, execution *model.Execution)
	AfterExecution(ctx context.Context, execution *model.Execution)
}
