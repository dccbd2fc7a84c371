// Package logging provides listener implementations that log execution and
// chunk lifecycle events.
package logging

import (
	"context"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

// ChunkLoggingListener logs chunk attempt boundaries at DEBUG level.
type ChunkLoggingListener struct{}

// NewChunkLoggingListener creates a new ChunkLoggingListener.
func NewChunkLoggingListener() *ChunkLoggingListener {
	return &ChunkLoggingListener{}
}

func (l *ChunkLoggingListener) BeforeChunk(ctx context.Context, execution *model.Execution) {
	logger.Debugf("Chunk starting for step '%s' (execution id: %d).", execution.Name, execution.ID)
}

func (l *ChunkLoggingListener) AfterChunk(ctx context.Context, execution *model.Execution) {
	logger.Debugf("Chunk finished for step '%s' (execution id: %d): read=%d written=%d.",
		execution.Name, execution.ID, execution.ReadCount, execution.WriteCount)
}

// ExecutionLoggingListener logs execution boundaries at INFO level.
type ExecutionLoggingListener struct{}

// NewExecutionLoggingListener creates a new ExecutionLoggingListener.
func NewExecutionLoggingListener() *ExecutionLoggingListener {
	return &ExecutionLoggingListener{}
}

func (l *ExecutionLoggingListener) BeforeExecution(ctx context.Context, execution *model.Execution) {
	logger.Infof("Execution %d of step '%s' starting.", execution.ID, execution.Name)
}

func (l *ExecutionLoggingListener) AfterExecution(ctx context.Context, execution *model.Execution) {
	logger.Infof("Execution %d of step '%s' finished with status %s (exit: %s).",
		execution.ID, execution.Name, execution.Status, execution.ExitStatus)
}
