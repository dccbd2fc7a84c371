// Package scope implements execution-scoped state: a registry guaranteeing
// exactly one ExecutionContext instance per execution id, a per-goroutine
// binding of "the execution this goroutine is processing", and a factory
// that resolves the ambient context from that binding.
package scope

import (
	"sync"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

// ContextRegistry maps execution ids to their ExecutionContext instance.
// Construction is lazy: the context for an id is created on first Get.
// Concurrent first access is resolved by LoadOrStore, so exactly one
// instance ever wins for an id; a losing candidate is discarded before any
// caller can observe it. The already-present fast path takes no lock.
type ContextRegistry struct {
	contexts sync.Map // int64 -> *model.ExecutionContext
}

// NewContextRegistry creates an empty registry.
func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{}
}

// Get returns the ExecutionContext for executionID, creating it if absent.
// All callers passing the same id receive the same instance until Release.
func (r *ContextRegistry) Get(executionID int64) *model.ExecutionContext {
	if v, ok := r.contexts.Load(executionID); ok {
		return v.(*model.ExecutionContext)
	}
	candidate := model.NewExecutionContext(executionID)
	actual, loaded := r.contexts.LoadOrStore(executionID, candidate)
	if loaded {
		logger.Debugf("Discarding losing context candidate for execution id %d.", executionID)
	}
	return actual.(*model.ExecutionContext)
}

// Release removes the context for executionID. A subsequent Get creates a
// fresh instance. Releasing an absent id is a no-op.
func (r *ContextRegistry) Release(executionID int64) {
	r.contexts.Delete(executionID)
}

// CloseAll removes every registered context. Called on factory teardown.
func (r *ContextRegistry) CloseAll() {
	count := 0
	r.contexts.Range(func(key, _ interface{}) bool {
		r.contexts.Delete(key)
		count++
		return true
	})
	if count > 0 {
		logger.Debugf("Context registry released %d remaining context(s) on close.", count)
	}
}

// Len returns the number of currently registered contexts.
func (r *ContextRegistry) Len() int {
	n := 0
	r.contexts.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
