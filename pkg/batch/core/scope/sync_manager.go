package scope

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

// SynchronizationManager tracks which execution each goroutine is currently
// processing. Bindings form a per-goroutine stack, so nested executions on
// one goroutine resolve to the innermost registration.
//
// Ambient lookup exists for components whose construction path cannot take
// an execution parameter; everything else should pass the execution
// explicitly.
type SynchronizationManager struct {
	mu       sync.Mutex
	bindings map[int64][]*model.Execution // goroutine id -> registration stack
}

// NewSynchronizationManager creates an empty manager.
func NewSynchronizationManager() *SynchronizationManager {
	return &SynchronizationManager{
		bindings: make(map[int64][]*model.Execution),
	}
}

// Register binds execution to the calling goroutine, pushing onto its stack.
// Every Register must be paired with exactly one Release on the same
// goroutine.
func (m *SynchronizationManager) Register(execution *model.Execution) {
	gid := goid.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[gid] = append(m.bindings[gid], execution)
}

// Release unbinds the most recent registration of the calling goroutine.
// Releasing with no active registration is a no-op.
func (m *SynchronizationManager) Release() {
	gid := goid.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.bindings[gid]
	if len(stack) == 0 {
		logger.Warnf("SynchronizationManager.Release called on goroutine %d with no active registration.", gid)
		return
	}
	if len(stack) == 1 {
		delete(m.bindings, gid)
		return
	}
	m.bindings[gid] = stack[:len(stack)-1]
}

// Current returns the innermost execution bound to the calling goroutine.
func (m *SynchronizationManager) Current() (*model.Execution, bool) {
	gid := goid.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.bindings[gid]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// Close clears all registrations of the calling goroutine. Used in teardown
// paths where the pairing of Register/Release can no longer be trusted.
func (m *SynchronizationManager) Close() {
	gid := goid.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bindings, gid)
}
