package scope

import (
	"errors"
	"reflect"
	"sync"

	"github.com/riptidekit/riptide/pkg/batch/core/domain/model"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

// ErrNotInitialized is returned by GetObject when no execution is bound,
// neither explicitly on the factory nor ambiently on the calling goroutine.
var ErrNotInitialized = errors.New("scope: no execution is bound; factory not initialized")

// ExecutionContextFactory produces the ExecutionContext of "the current
// execution". The execution is resolved from an explicitly set execution if
// present, otherwise from the calling goroutine's binding in the
// SynchronizationManager. Repeated GetObject calls for the same execution
// return the identical instance.
type ExecutionContextFactory struct {
	mu          sync.Mutex
	execution   *model.Execution
	registry    *ContextRegistry
	syncManager *SynchronizationManager
}

// NewExecutionContextFactory creates a factory backed by the given registry
// and binding manager.
func NewExecutionContextFactory(registry *ContextRegistry, syncManager *SynchronizationManager) *ExecutionContextFactory {
	return &ExecutionContextFactory{
		registry:    registry,
		syncManager: syncManager,
	}
}

// SetExecution explicitly pins the factory to one execution. When set, it
// takes precedence over the ambient goroutine binding.
func (f *ExecutionContextFactory) SetExecution(execution *model.Execution) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execution = execution
}

// currentExecution resolves the execution: explicit first, then ambient.
func (f *ExecutionContextFactory) currentExecution() (*model.Execution, bool) {
	f.mu.Lock()
	pinned := f.execution
	f.mu.Unlock()
	if pinned != nil {
		return pinned, true
	}
	return f.syncManager.Current()
}

// GetObject returns the ExecutionContext of the current execution, creating
// it lazily via the registry. It returns ErrNotInitialized when no
// execution is bound.
func (f *ExecutionContextFactory) GetObject() (*model.ExecutionContext, error) {
	execution, ok := f.currentExecution()
	if !ok {
		return nil, ErrNotInitialized
	}
	return f.registry.Get(execution.ID), nil
}

// ObjectType returns the type of object this factory produces.
func (f *ExecutionContextFactory) ObjectType() reflect.Type {
	return reflect.TypeOf(&model.ExecutionContext{})
}

// IsSingleton reports whether the factory always returns one shared object.
// It is false: the produced object depends on the current execution.
func (f *ExecutionContextFactory) IsSingleton() bool {
	return false
}

// Close releases every context in the registry. Safe to call multiple times.
func (f *ExecutionContextFactory) Close() error {
	logger.Debugf("ExecutionContextFactory closing; releasing all registered contexts.")
	f.registry.CloseAll()
	return nil
}
