package model

import (
	"sync"

	"github.com/google/uuid"
)

// ExecutionContext is the keyed state store scoped to one execution.
// It is safe for concurrent use; all access goes through the mutex.
// The instance id distinguishes physical instances, which is what the
// registry's one-instance-per-execution guarantee is asserted against.
type ExecutionContext struct {
	mu          sync.RWMutex
	instanceID  string
	executionID int64
	attrs       map[string]interface{}
}

// NewExecutionContext creates an empty context owned by the given execution id.
func NewExecutionContext(executionID int64) *ExecutionContext {
	return &ExecutionContext{
		instanceID:  uuid.New().String(),
		executionID: executionID,
		attrs:       make(map[string]interface{}),
	}
}

// InstanceID returns the unique id of this physical instance.
func (ec *ExecutionContext) InstanceID() string {
	return ec.instanceID
}

// ExecutionID returns the id of the execution that owns this context.
func (ec *ExecutionContext) ExecutionID() int64 {
	return ec.executionID
}

// Put stores a value under key, replacing any previous value.
func (ec *ExecutionContext) Put(key string, value interface{}) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.attrs[key] = value
}

// Get retrieves the value stored under key.
func (ec *ExecutionContext) Get(key string) (interface{}, bool) {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	v, ok := ec.attrs[key]
	return v, ok
}

// GetString retrieves a string value stored under key. It returns false if
// the key is absent or holds a non-string value.
func (ec *ExecutionContext) GetString(key string) (string, bool) {
	v, ok := ec.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt retrieves an int value stored under key. It returns false if the
// key is absent or holds a non-int value.
func (ec *ExecutionContext) GetInt(key string) (int, bool) {
	v, ok := ec.Get(key)
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}

// Remove deletes the value stored under key.
func (ec *ExecutionContext) Remove(key string) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	delete(ec.attrs, key)
}

// Len returns the number of stored entries.
func (ec *ExecutionContext) Len() int {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return len(ec.attrs)
}
