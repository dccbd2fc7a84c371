package step

import (
	"context"

	"github.com/riptidekit/riptide/pkg/batch/core/scope"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

const writtenTotalKey = "seqgen.written_total"

// ContextWriter logs each written chunk and keeps a running total in the
// current execution's context, resolved ambiently through the factory.
type ContextWriter struct {
	factory *scope.ExecutionContextFactory
}

// NewContextWriter creates a writer backed by the given context factory.
func NewContextWriter(factory *scope.ExecutionContextFactory) *ContextWriter {
	return &ContextWriter{factory: factory}
}

// Write logs the chunk and accumulates the written count into the execution
// context.
func (w *ContextWriter) Write(ctx context.Context, items []int) error {
	ec, err := w.factory.GetObject()
	if err != nil {
		return err
	}
	total, _ := ec.GetInt(writtenTotalKey)
	ec.Put(writtenTotalKey, total+len(items))
	logger.Infof("ContextWriter wrote chunk of %d item(s): %v (total so far: %d)", len(items), items, total+len(items))
	return nil
}

// WrittenTotal reports the running total recorded for the current execution.
func (w *ContextWriter) WrittenTotal() (int, error) {
	ec, err := w.factory.GetObject()
	if err != nil {
		return 0, err
	}
	total, _ := ec.GetInt(writtenTotalKey)
	return total, nil
}
