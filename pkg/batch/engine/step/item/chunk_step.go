package item

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/riptidekit/riptide/pkg/batch/core/application/port"
	"github.com/riptidekit/riptide/pkg/batch/core/checkpoint"
	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/core/metrics"
	"github.com/riptidekit/riptide/pkg/batch/core/scope"
	"github.com/riptidekit/riptide/pkg/batch/engine/step/repeat"
	"github.com/riptidekit/riptide/pkg/batch/engine/step/retry"
	"github.com/riptidekit/riptide/pkg/batch/support/util/exception"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

const moduleStep = "step"

// ChunkStep drives a chunk-oriented step to completion: it runs tasklet
// attempts until the source is exhausted, retries failed attempts from
// their checkpoint per the retry policy, and applies each successful
// attempt's contribution to the execution. A failed attempt's contribution
// is discarded, so redone work is never double-counted.
type ChunkStep[I, O any] struct {
	name           string
	reader         port.ItemReader[I]
	processor      port.ItemProcessor[I, O]
	writer         port.ItemWriter[O]
	tasklet        *ChunkTasklet[I, O]
	retryPolicy    retry.RetryPolicy
	chunkListeners []port.ChunkListener
	execListeners  []port.ExecutionListener
	recorder       metrics.MetricRecorder
	tracer         metrics.Tracer
	syncManager    *scope.SynchronizationManager
	sleep          func(time.Duration)
}

// NewChunkStep creates a step processing chunkSize items per chunk.
// Metric recorder and tracer default to no-ops; use the setters to attach
// real backends, listeners and the goroutine binding manager.
func NewChunkStep[I, O any](
	name string,
	reader port.ItemReader[I],
	processor port.ItemProcessor[I, O],
	writer port.ItemWriter[O],
	chunkSize int,
	retryPolicy retry.RetryPolicy,
) *ChunkStep[I, O] {
	if chunkSize < 1 {
		chunkSize = 1
	}
	if retryPolicy == nil {
		retryPolicy = retry.NewNoRetryPolicy()
	}
	return &ChunkStep[I, O]{
		name:        name,
		reader:      reader,
		processor:   processor,
		writer:      writer,
		tasklet:     NewChunkTasklet(name, reader, processor, writer, repeat.NewFixedChunkTemplate(chunkSize)),
		retryPolicy: retryPolicy,
		recorder:    metrics.NewNoopMetricRecorder(),
		tracer:      metrics.NewNoopTracer(),
		sleep:       time.Sleep,
	}
}

// Name returns the step name.
func (s *ChunkStep[I, O]) Name() string { return s.name }

// SetMetricRecorder attaches a metric recorder.
func (s *ChunkStep[I, O]) SetMetricRecorder(recorder metrics.MetricRecorder) {
	if recorder != nil {
		s.recorder = recorder
	}
}

// SetTracer attaches a tracer.
func (s *ChunkStep[I, O]) SetTracer(tracer metrics.Tracer) {
	if tracer != nil {
		s.tracer = tracer
	}
}

// SetSynchronizationManager makes the step register the execution on the
// driving goroutine for the duration of Execute, enabling ambient context
// lookup inside components.
func (s *ChunkStep[I, O]) SetSynchronizationManager(m *scope.SynchronizationManager) {
	s.syncManager = m
}

// AddChunkListener registers a listener notified around each chunk attempt.
func (s *ChunkStep[I, O]) AddChunkListener(l port.ChunkListener) {
	if l != nil {
		s.chunkListeners = append(s.chunkListeners, l)
	}
}

// AddExecutionListener registers a listener notified around the execution.
func (s *ChunkStep[I, O]) AddExecutionListener(l port.ExecutionListener) {
	if l != nil {
		s.execListeners = append(s.execListeners, l)
	}
}

// Execute runs the step to completion for the given execution. It returns
// the first non-retryable (or retry-exhausted) attempt error, combined with
// any component close errors.
func (s *ChunkStep[I, O]) Execute(ctx context.Context, execution *model.Execution) error {
	logger.Infof("Step '%s' starting (execution id: %d).", s.name, execution.ID)
	if s.syncManager != nil {
		s.syncManager.Register(execution)
		defer s.syncManager.Release()
	}

	execution.MarkAsStarted()
	s.recorder.RecordExecutionStart(ctx, execution)
	ctx, endSpan := s.tracer.StartExecutionSpan(ctx, execution)
	defer endSpan()

	for _, l := range s.execListeners {
		l.BeforeExecution(ctx, execution)
	}

	if err := s.openComponents(ctx); err != nil {
		execution.MarkAsFailed(err)
		s.recorder.RecordExecutionEnd(ctx, execution)
		return err
	}

	stepErr := s.runAttempts(ctx, execution)

	if closeErr := s.closeComponents(ctx); closeErr != nil {
		stepErr = multierror.Append(stepErr, closeErr).ErrorOrNil()
	}

	if stepErr != nil {
		execution.MarkAsFailed(stepErr)
		logger.Errorf("Step '%s' failed (execution id: %d): %v", s.name, execution.ID, stepErr)
	} else {
		execution.MarkAsCompleted()
		logger.Infof("Step '%s' completed (execution id: %d): read=%d written=%d filtered=%d skipped=%d commits=%d",
			s.name, execution.ID, execution.ReadCount, execution.WriteCount,
			execution.FilterCount, execution.ReadSkipCount, execution.CommitCount)
	}
	s.recorder.RecordExecutionEnd(ctx, execution)

	for _, l := range s.execListeners {
		l.AfterExecution(ctx, execution)
	}
	return stepErr
}

// runAttempts drives tasklet attempts until FINISHED. The checkpoint store
// lives across attempts; a retried attempt resumes at whatever phase the
// store records.
func (s *ChunkStep[I, O]) runAttempts(ctx context.Context, execution *model.Execution) error {
	store := checkpoint.NewStore[I, O]()
	attempt := 1

	for {
		contribution := execution.NewContribution()
		for _, l := range s.chunkListeners {
			l.BeforeChunk(ctx, execution)
		}

		chunkCtx, endChunk := s.tracer.StartChunkSpan(ctx, s.name)
		status, err := s.tasklet.Execute(chunkCtx, contribution, store)
		endChunk()

		if err != nil {
			// Contribution discarded: counters only advance at commit.
			execution.RollbackCount++
			s.recorder.RecordChunkRollback(ctx, s.name)
			s.tracer.RecordError(chunkCtx, err)
			for _, l := range s.chunkListeners {
				l.AfterChunk(ctx, execution)
			}

			if s.retryPolicy.ShouldRetry(err) && attempt < s.retryPolicy.GetMaxAttempts() {
				backoff := s.retryPolicy.GetBackoffInterval(attempt)
				logger.Warnf("Step '%s': chunk attempt %d/%d failed, retrying from checkpoint after %s: %v",
					s.name, attempt, s.retryPolicy.GetMaxAttempts(), backoff, err)
				attempt++
				if backoff > 0 {
					s.sleep(backoff)
				}
				continue
			}
			return err
		}

		execution.Apply(contribution)
		attempt = 1
		s.recorder.RecordItemsRead(ctx, s.name, contribution.ReadCount())
		s.recorder.RecordItemsWritten(ctx, s.name, contribution.WriteCount())
		s.recorder.RecordItemsFiltered(ctx, s.name, contribution.FilterCount())
		s.recorder.RecordReadSkips(ctx, s.name, contribution.ReadSkipCount())
		s.recorder.RecordChunkCommit(ctx, s.name, contribution.WriteCount())
		for _, l := range s.chunkListeners {
			l.AfterChunk(ctx, execution)
		}

		if status == repeat.StatusFinished {
			if !store.IsEmpty() {
				return exception.NewBatchErrorf(moduleStep,
					"step '%s' finished with a non-empty checkpoint store", s.name)
			}
			return nil
		}
	}
}

// openComponents opens reader, processor and writer in that order if they
// implement OpenCloser.
func (s *ChunkStep[I, O]) openComponents(ctx context.Context) error {
	for _, c := range []interface{}{s.reader, s.processor, s.writer} {
		if oc, ok := c.(port.OpenCloser); ok {
			if err := oc.Open(ctx); err != nil {
				return exception.NewBatchError(moduleStep, "failed to open step component", err)
			}
		}
	}
	return nil
}

// closeComponents closes writer, processor and reader in reverse order,
// collecting all failures.
func (s *ChunkStep[I, O]) closeComponents(ctx context.Context) error {
	var result *multierror.Error
	for _, c := range []interface{}{s.writer, s.processor, s.reader} {
		if oc, ok := c.(port.OpenCloser); ok {
			if err := oc.Close(ctx); err != nil {
				result = multierror.Append(result, exception.NewBatchError(moduleStep, "failed to close step component", err))
			}
		}
	}
	return result.ErrorOrNil()
}
