package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
)

func TestStore_EmptyByDefault(t *testing.T) {
	s := NewStore[string, string]()

	assert.True(t, s.IsEmpty())
	assert.False(t, s.HasInput())
	assert.False(t, s.HasOutput())
	assert.True(t, s.Input().IsEmpty())
	assert.True(t, s.Output().IsEmpty())
}

func TestStore_FreshChunkNotRecorded(t *testing.T) {
	s := NewStore[string, string]()

	c := s.Input()
	c.Add(model.WrapItem("a", 0))

	// Filling a fresh chunk does not checkpoint anything.
	assert.False(t, s.HasInput())
	assert.True(t, s.IsEmpty())
}

func TestStore_StoreInputRecordsPendingChunk(t *testing.T) {
	s := NewStore[string, string]()
	c := s.Input()
	c.Add(model.WrapItem("a", 0))
	c.Add(model.WrapItem("b", 1))

	s.StoreInput(c, 2, 1)

	require.True(t, s.HasInput())
	assert.False(t, s.HasOutput())
	// A later Input() returns the recorded chunk, same instance.
	assert.Same(t, c, s.Input())
	assert.Equal(t, 2, s.Input().Size())
}

func TestStore_OutputBoundaryIsAtomic(t *testing.T) {
	s := NewStore[string, string]()
	in := s.Input()
	in.Add(model.WrapItem("a", 0))
	s.StoreInput(in, 1, 0)

	out := s.Output()
	out.Add("A")
	s.StoreOutputAndClearInput(out)

	// Exactly one slot occupied after the boundary, never both or neither.
	assert.False(t, s.HasInput())
	require.True(t, s.HasOutput())
	assert.Same(t, out, s.Output())
}

func TestStore_ClearAllReturnsDeferredCounts(t *testing.T) {
	s := NewStore[string, string]()
	in := s.Input()
	in.Add(model.WrapItem("a", 0))
	s.StoreInput(in, 3, 2)
	s.RecordFilterCount(1)

	counts := s.ClearAll()

	assert.Equal(t, Counts{Read: 3, ReadSkip: 2, Filter: 1}, counts)
	assert.True(t, s.IsEmpty())

	// Counts are handed over exactly once.
	assert.Equal(t, Counts{}, s.ClearAll())
}

func TestStore_CountsSurviveOutputBoundary(t *testing.T) {
	s := NewStore[int, int]()
	in := s.Input()
	in.Add(model.WrapItem(1, 0))
	s.StoreInput(in, 1, 0)
	s.RecordFilterCount(0)

	out := s.Output()
	out.Add(2)
	s.StoreOutputAndClearInput(out)

	counts := s.ClearAll()
	assert.Equal(t, 1, counts.Read)
}

func TestStore_FilterCountIsSetNotAccumulated(t *testing.T) {
	s := NewStore[int, int]()

	// The processing phase re-runs in full on retry; a second recording
	// replaces the first.
	s.RecordFilterCount(2)
	s.RecordFilterCount(1)

	assert.Equal(t, 1, s.ClearAll().Filter)
}
