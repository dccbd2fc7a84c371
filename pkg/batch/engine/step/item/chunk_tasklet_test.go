package item

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riptidekit/riptide/pkg/batch/core/checkpoint"
	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/engine/step/repeat"
)

// MockItemReader is a mock implementation of port.ItemReader[string].
type MockItemReader struct {
	mock.Mock
}

func (m *MockItemReader) Read(ctx context.Context) (model.ItemWrapper[string], error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ItemWrapper[string]), args.Error(1)
}

// MockItemProcessor is a mock implementation of port.ItemProcessor[string, string].
type MockItemProcessor struct {
	mock.Mock
}

func (m *MockItemProcessor) Process(ctx context.Context, item string) (*string, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// MockItemWriter is a mock implementation of port.ItemWriter[string].
type MockItemWriter struct {
	mock.Mock
}

func (m *MockItemWriter) Write(ctx context.Context, items []string) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func newTasklet(chunkSize int) (*ChunkTasklet[string, string], *MockItemReader, *MockItemProcessor, *MockItemWriter) {
	reader := new(MockItemReader)
	processor := new(MockItemProcessor)
	writer := new(MockItemWriter)
	tasklet := NewChunkTasklet[string, string]("test-step", reader, processor, writer,
		repeat.NewFixedChunkTemplate(chunkSize))
	return tasklet, reader, processor, writer
}

func expectUppercase(processor *MockItemProcessor, items ...string) {
	for _, item := range items {
		processor.On("Process", mock.Anything, item).Return(strPtr(strings.ToUpper(item)), nil).Once()
	}
}

func TestChunkTasklet_FullChunkReadProcessWrite(t *testing.T) {
	tasklet, reader, processor, writer := newTasklet(2)
	store := checkpoint.NewStore[string, string]()
	execution := model.NewExecution("test-step")
	contribution := execution.NewContribution()

	reader.On("Read", mock.Anything).Return(model.WrapItem("a", 0), nil).Once()
	reader.On("Read", mock.Anything).Return(model.WrapItem("b", 0), nil).Once()
	expectUppercase(processor, "a", "b")
	writer.On("Write", mock.Anything, []string{"A", "B"}).Return(nil).Once()

	status, err := tasklet.Execute(context.Background(), contribution, store)

	require.NoError(t, err)
	assert.Equal(t, repeat.StatusContinuable, status)
	assert.Equal(t, 2, contribution.ReadCount())
	assert.Equal(t, 2, contribution.WriteCount())
	assert.Zero(t, contribution.FilterCount())
	assert.True(t, store.IsEmpty())
	reader.AssertExpectations(t)
	processor.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestChunkTasklet_FinalPartialChunkFinishes(t *testing.T) {
	tasklet, reader, processor, writer := newTasklet(2)
	store := checkpoint.NewStore[string, string]()
	contribution := model.NewExecution("test-step").NewContribution()

	reader.On("Read", mock.Anything).Return(model.WrapItem("c", 0), nil).Once()
	reader.On("Read", mock.Anything).Return(model.EndOfSource[string](0), nil).Once()
	expectUppercase(processor, "c")
	writer.On("Write", mock.Anything, []string{"C"}).Return(nil).Once()

	status, err := tasklet.Execute(context.Background(), contribution, store)

	require.NoError(t, err)
	assert.Equal(t, repeat.StatusFinished, status)
	assert.Equal(t, 1, contribution.ReadCount())
	assert.Equal(t, 1, contribution.WriteCount())
	assert.True(t, store.IsEmpty())
}

func TestChunkTasklet_ImmediateEndOfSource(t *testing.T) {
	tasklet, reader, _, writer := newTasklet(2)
	store := checkpoint.NewStore[string, string]()
	contribution := model.NewExecution("test-step").NewContribution()

	reader.On("Read", mock.Anything).Return(model.EndOfSource[string](0), nil).Once()

	status, err := tasklet.Execute(context.Background(), contribution, store)

	require.NoError(t, err)
	assert.Equal(t, repeat.StatusFinished, status)
	assert.Zero(t, contribution.ReadCount())
	assert.True(t, store.IsEmpty())
	writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestChunkTasklet_FilteredItemsProduceNoWrite(t *testing.T) {
	tasklet, reader, processor, writer := newTasklet(2)
	store := checkpoint.NewStore[string, string]()
	contribution := model.NewExecution("test-step").NewContribution()

	reader.On("Read", mock.Anything).Return(model.WrapItem("x", 0), nil).Once()
	reader.On("Read", mock.Anything).Return(model.EndOfSource[string](0), nil).Once()
	processor.On("Process", mock.Anything, "x").Return(nil, nil).Once()

	status, err := tasklet.Execute(context.Background(), contribution, store)

	require.NoError(t, err)
	assert.Equal(t, repeat.StatusFinished, status)
	assert.Equal(t, 1, contribution.ReadCount())
	assert.Equal(t, 1, contribution.FilterCount())
	assert.Zero(t, contribution.WriteCount())
	// Both checkpoints are retired even though nothing was written.
	assert.True(t, store.IsEmpty())
	writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestChunkTasklet_ReadSkipsAreCounted(t *testing.T) {
	tasklet, reader, processor, writer := newTasklet(2)
	store := checkpoint.NewStore[string, string]()
	contribution := model.NewExecution("test-step").NewContribution()

	reader.On("Read", mock.Anything).Return(model.WrapItem("a", 2), nil).Once()
	reader.On("Read", mock.Anything).Return(model.EndOfSource[string](1), nil).Once()
	expectUppercase(processor, "a")
	writer.On("Write", mock.Anything, []string{"A"}).Return(nil).Once()

	_, err := tasklet.Execute(context.Background(), contribution, store)

	require.NoError(t, err)
	assert.Equal(t, 1, contribution.ReadCount())
	assert.Equal(t, 3, contribution.ReadSkipCount())
}

func TestChunkTasklet_WriteFailureResumesAtWritePhase(t *testing.T) {
	tasklet, reader, processor, writer := newTasklet(2)
	store := checkpoint.NewStore[string, string]()
	execution := model.NewExecution("test-step")

	boom := errors.New("writer unavailable")
	reader.On("Read", mock.Anything).Return(model.WrapItem("a", 0), nil).Once()
	reader.On("Read", mock.Anything).Return(model.WrapItem("b", 0), nil).Once()
	expectUppercase(processor, "a", "b")
	writer.On("Write", mock.Anything, []string{"A", "B"}).Return(boom).Once()

	failed := execution.NewContribution()
	_, err := tasklet.Execute(context.Background(), failed, store)
	require.ErrorIs(t, err, boom)

	// The processed outputs are checkpointed; the inputs are retired.
	assert.True(t, store.HasOutput())
	assert.False(t, store.HasInput())

	// The retried attempt goes straight to the write phase with the exact
	// same outputs: no re-read, no re-process.
	writer.On("Write", mock.Anything, []string{"A", "B"}).Return(nil).Once()

	retried := execution.NewContribution()
	status, err := tasklet.Execute(context.Background(), retried, store)

	require.NoError(t, err)
	assert.Equal(t, repeat.StatusContinuable, status)
	assert.True(t, store.IsEmpty())
	reader.AssertNumberOfCalls(t, "Read", 2)
	processor.AssertNumberOfCalls(t, "Process", 2)
	writer.AssertNumberOfCalls(t, "Write", 2)
	// The committing attempt is credited with the chunk's reads and writes.
	assert.Equal(t, 2, retried.ReadCount())
	assert.Equal(t, 2, retried.WriteCount())
	assert.Zero(t, failed.WriteCount())
}

func TestChunkTasklet_ProcessFailureResumesAtProcessPhase(t *testing.T) {
	tasklet, reader, processor, writer := newTasklet(2)
	store := checkpoint.NewStore[string, string]()
	execution := model.NewExecution("test-step")

	boom := errors.New("transform failed")
	reader.On("Read", mock.Anything).Return(model.WrapItem("a", 0), nil).Once()
	reader.On("Read", mock.Anything).Return(model.WrapItem("b", 0), nil).Once()
	processor.On("Process", mock.Anything, "a").Return(strPtr("A"), nil).Once()
	processor.On("Process", mock.Anything, "b").Return(nil, boom).Once()

	failed := execution.NewContribution()
	_, err := tasklet.Execute(context.Background(), failed, store)
	require.ErrorIs(t, err, boom)

	// The read inputs are checkpointed; no output was recorded.
	assert.True(t, store.HasInput())
	assert.False(t, store.HasOutput())

	// The retried attempt re-processes the buffered inputs without reading.
	expectUppercase(processor, "a", "b")
	writer.On("Write", mock.Anything, []string{"A", "B"}).Return(nil).Once()

	retried := execution.NewContribution()
	status, err := tasklet.Execute(context.Background(), retried, store)

	require.NoError(t, err)
	assert.Equal(t, repeat.StatusContinuable, status)
	assert.True(t, store.IsEmpty())
	reader.AssertNumberOfCalls(t, "Read", 2)
	assert.Equal(t, 2, retried.ReadCount())
	assert.Equal(t, 2, retried.WriteCount())
}

func TestChunkTasklet_ReadErrorLeavesStoreEmpty(t *testing.T) {
	tasklet, reader, processor, writer := newTasklet(2)
	store := checkpoint.NewStore[string, string]()
	contribution := model.NewExecution("test-step").NewContribution()

	boom := errors.New("source gone")
	reader.On("Read", mock.Anything).Return(model.ItemWrapper[string]{}, boom).Once()

	_, err := tasklet.Execute(context.Background(), contribution, store)

	require.ErrorIs(t, err, boom)
	// Nothing was buffered, so nothing is checkpointed.
	assert.True(t, store.IsEmpty())
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}
