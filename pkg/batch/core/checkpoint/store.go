// Package checkpoint holds the in-flight chunk state that survives a failed
// attempt. The store has exactly two typed slots: the pending-input chunk
// (read but not yet fully processed+written) and the pending-output chunk
// (processed but not yet durably written). Presence of a slot means that
// phase's work is not yet committed; an empty store means nothing is owed.
package checkpoint

import (
	"sync"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
)

// Counts are the per-chunk counters that ride with the checkpoint. A retried
// attempt skips the phases whose work is checkpointed, so their counters are
// deferred here and credited to the attempt that finally commits the chunk.
// This keeps aggregate counters exactly-once under retries.
type Counts struct {
	Read     int
	ReadSkip int
	Filter   int
}

// Store is the two-slot checkpoint for one step execution.
// All slot transitions happen under one lock, so the "record output, drop
// input" boundary is atomic: no failure window exists in which both or
// neither checkpoint is visible.
type Store[I, O any] struct {
	mu     sync.Mutex
	input  *model.Chunk[model.ItemWrapper[I]]
	output *model.Chunk[O]
	counts Counts
}

// NewStore creates an empty checkpoint store.
func NewStore[I, O any]() *Store[I, O] {
	return &Store[I, O]{}
}

// Input returns the pending-input chunk if one is recorded, or a fresh empty
// chunk otherwise. A fresh chunk is not recorded until StoreInput is called.
func (s *Store[I, O]) Input() *model.Chunk[model.ItemWrapper[I]] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.input != nil {
		return s.input
	}
	return model.NewChunk[model.ItemWrapper[I]]()
}

// Output returns the pending-output chunk if one is recorded, or a fresh
// empty chunk otherwise.
func (s *Store[I, O]) Output() *model.Chunk[O] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.output != nil {
		return s.output
	}
	return model.NewChunk[O]()
}

// StoreInput records the chunk as the pending input together with the read
// and read-skip counts it took to fill it. From this point a failed attempt
// resumes at the processing phase instead of re-reading.
func (s *Store[I, O]) StoreInput(c *model.Chunk[model.ItemWrapper[I]], readCount, readSkipCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = c
	s.counts.Read = readCount
	s.counts.ReadSkip = readSkipCount
}

// RecordFilterCount records how many items the processing phase dropped.
// The phase re-runs in full when retried, so the value is set, not added.
func (s *Store[I, O]) RecordFilterCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts.Filter = count
}

// StoreOutputAndClearInput atomically records the chunk as the pending
// output and drops the pending input. A failed write then resumes at the
// writing phase with these exact outputs, never re-reading or re-processing.
// The deferred counts are untouched; they belong to the chunk, not the slot.
func (s *Store[I, O]) StoreOutputAndClearInput(c *model.Chunk[O]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = c
	s.input = nil
}

// ClearAll drops both slots and hands back the chunk's deferred counts.
// Called once a chunk has been durably written; the caller credits the
// counts to the committing attempt's contribution.
func (s *Store[I, O]) ClearAll() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = nil
	s.output = nil
	counts := s.counts
	s.counts = Counts{}
	return counts
}

// HasInput reports whether a pending-input chunk is recorded.
func (s *Store[I, O]) HasInput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input != nil
}

// HasOutput reports whether a pending-output chunk is recorded.
func (s *Store[I, O]) HasOutput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output != nil
}

// IsEmpty reports whether neither slot is recorded.
func (s *Store[I, O]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input == nil && s.output == nil
}
