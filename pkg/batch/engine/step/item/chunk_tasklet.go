// Package item implements chunk-oriented step execution: the per-attempt
// tasklet and the driving ChunkStep that runs attempts to completion with
// checkpoint-based recovery.
package item

import (
	"context"

	"github.com/riptidekit/riptide/pkg/batch/core/application/port"
	"github.com/riptidekit/riptide/pkg/batch/core/checkpoint"
	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/engine/step/repeat"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

// ChunkTasklet executes exactly one attempt of chunk progress. The
// checkpoint store decides where the attempt resumes: with a pending input
// chunk it skips reading, with a pending output chunk it skips reading and
// processing. Capability errors propagate unwrapped; classification is the
// caller's job.
type ChunkTasklet[I, O any] struct {
	name      string
	reader    port.ItemReader[I]
	processor port.ItemProcessor[I, O]
	writer    port.ItemWriter[O]
	repeatOps repeat.Operations
}

// NewChunkTasklet creates a tasklet whose read loop is driven by repeatOps
// (typically a fixed-count template sized to the chunk).
func NewChunkTasklet[I, O any](
	name string,
	reader port.ItemReader[I],
	processor port.ItemProcessor[I, O],
	writer port.ItemWriter[O],
	repeatOps repeat.Operations,
) *ChunkTasklet[I, O] {
	return &ChunkTasklet[I, O]{
		name:      name,
		reader:    reader,
		processor: processor,
		writer:    writer,
		repeatOps: repeatOps,
	}
}

// Execute runs one attempt. It returns FINISHED once the source is
// exhausted and all buffered work is written, CONTINUABLE otherwise.
//
// Read, skip and filter counters ride with the checkpoint and are credited
// to the contribution of the attempt that commits the chunk; only that
// contribution is ever applied, so the aggregates stay exactly-once under
// retries.
func (t *ChunkTasklet[I, O]) Execute(
	ctx context.Context,
	contribution *model.Contribution,
	store *checkpoint.Store[I, O],
) (repeat.Status, error) {
	inputs := store.Input()
	outputs := store.Output()
	result := repeat.StatusContinuable

	// Fresh chunk only when nothing is owed from a previous attempt.
	if inputs.IsEmpty() && outputs.IsEmpty() {
		reads, skips := 0, 0
		var err error
		result, err = t.repeatOps.Iterate(ctx, func(ctx context.Context) (repeat.Status, error) {
			wrapper, err := t.reader.Read(ctx)
			if err != nil {
				return repeat.StatusContinuable, err
			}
			skips += wrapper.SkipCount
			if wrapper.IsEnd() {
				return repeat.StatusFinished, nil
			}
			inputs.Add(wrapper)
			reads++
			return repeat.StatusContinuable, nil
		})
		if err != nil {
			return result, err
		}
		if inputs.IsEmpty() {
			// Source exhausted with nothing buffered; no checkpoint to record.
			contribution.IncrementReadSkipCount(skips)
			return result, nil
		}
		store.StoreInput(inputs, reads, skips)
		logger.Debugf("ChunkTasklet '%s': buffered %d input item(s).", t.name, inputs.Size())
	}

	if !inputs.IsEmpty() {
		filtered, err := t.process(ctx, inputs, outputs)
		if err != nil {
			return result, err
		}
		store.RecordFilterCount(filtered)
	}

	// Single atomic boundary: outputs become the checkpoint, inputs are done.
	store.StoreOutputAndClearInput(outputs)

	if err := t.write(ctx, contribution, outputs); err != nil {
		return result, err
	}

	// Chunk durably written: retire the checkpoint and credit its deferred
	// counters to this attempt.
	counts := store.ClearAll()
	contribution.IncrementReadCount(counts.Read)
	contribution.IncrementReadSkipCount(counts.ReadSkip)
	contribution.IncrementFilterCount(counts.Filter)
	return result, nil
}

// process transforms every buffered input in order and reports how many
// items were filtered (nil result, nil error). The inputs chunk is cleared
// in memory only after all items processed; the checkpointed copy is
// retired later at the atomic boundary.
func (t *ChunkTasklet[I, O]) process(
	ctx context.Context,
	inputs *model.Chunk[model.ItemWrapper[I]],
	outputs *model.Chunk[O],
) (int, error) {
	filtered := 0
	for _, wrapper := range inputs.Items() {
		out, err := t.processor.Process(ctx, *wrapper.Item)
		if err != nil {
			return filtered, err
		}
		if out != nil {
			outputs.Add(*out)
		} else {
			filtered++
		}
	}
	inputs.Clear()
	return filtered, nil
}

// write hands the whole output chunk to the writer as one unit and clears
// it on success. An empty chunk (everything filtered) writes nothing.
func (t *ChunkTasklet[I, O]) write(
	ctx context.Context,
	contribution *model.Contribution,
	outputs *model.Chunk[O],
) error {
	if outputs.IsEmpty() {
		return nil
	}
	count := outputs.Size()
	if err := t.writer.Write(ctx, outputs.Items()); err != nil {
		return err
	}
	contribution.IncrementWriteCount(count)
	outputs.Clear()
	return nil
}
