// Command seqgen runs a small chunk-oriented batch: it reads integer
// records (some malformed), doubles them, filters multiples of ten and
// accumulates the written total into the execution's context.
package main

import (
	"context"
	_ "embed"
	"time"

	"go.uber.org/fx"

	"github.com/riptidekit/riptide/example/seqgen/internal/step"
	"github.com/riptidekit/riptide/pkg/batch/core/config"
	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/core/metrics"
	"github.com/riptidekit/riptide/pkg/batch/core/scope"
	"github.com/riptidekit/riptide/pkg/batch/engine/step/item"
	"github.com/riptidekit/riptide/pkg/batch/engine/step/retry"
	inframetrics "github.com/riptidekit/riptide/pkg/batch/infrastructure/metrics"
	"github.com/riptidekit/riptide/pkg/batch/listener/logging"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

//go:embed resources/application.yaml
var embeddedConfigYAML []byte

func newReader() *step.RecordReader {
	return step.NewRecordReader([]string{
		"1", "2", "oops", "3", "4", "5", "6", "x7", "8", "9", "10",
	})
}

func newChunkStep(
	cfg *config.Config,
	reader *step.RecordReader,
	processor *step.DoublingProcessor,
	writer *step.ContextWriter,
	syncManager *scope.SynchronizationManager,
	recorder metrics.MetricRecorder,
	tracer metrics.Tracer,
) *item.ChunkStep[int, int] {
	batchCfg := cfg.Riptide.Batch
	policy := retry.NewDefaultRetryPolicyFactory().CreatePolicy(
		batchCfg.Retry.MaxAttempts,
		time.Duration(batchCfg.Retry.InitialInterval)*time.Millisecond,
		nil,
	)
	s := item.NewChunkStep[int, int](batchCfg.StepName, reader, processor, writer, batchCfg.ChunkSize, policy)
	s.SetSynchronizationManager(syncManager)
	s.SetMetricRecorder(recorder)
	s.SetTracer(tracer)
	s.AddChunkListener(logging.NewChunkLoggingListener())
	s.AddExecutionListener(logging.NewExecutionLoggingListener())
	return s
}

func run(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	chunkStep *item.ChunkStep[int, int],
	writer *step.ContextWriter,
	syncManager *scope.SynchronizationManager,
	registry *scope.ContextRegistry,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Errorf("Shutdown failed: %v", err)
					}
				}()

				execution := model.NewExecution(chunkStep.Name())
				syncManager.Register(execution)
				defer syncManager.Release()

				if err := chunkStep.Execute(context.Background(), execution); err != nil {
					logger.Errorf("Batch failed: %v", err)
					return
				}
				if total, err := writer.WrittenTotal(); err == nil {
					logger.Infof("Execution %d done: written total in context = %d", execution.ID, total)
				}
				registry.Release(execution.ID)
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		logger.Module,
		fx.Supply(config.EmbeddedConfig(embeddedConfigYAML)),
		config.Module,
		scope.Module,
		inframetrics.Module,
		fx.Provide(
			newReader,
			step.NewDoublingProcessor,
			step.NewContextWriter,
			newChunkStep,
		),
		fx.Invoke(run),
	)
	app.Run()
}
