// Package model defines the core domain objects of the batch execution engine:
// executions, their per-attempt contributions, chunks and execution contexts.
package model

import (
	"fmt"
	"sync/atomic"
	"time"
)

// BatchStatus represents the lifecycle state of an execution.
type BatchStatus string

const (
	BatchStatusStarting  BatchStatus = "STARTING"
	BatchStatusStarted   BatchStatus = "STARTED"
	BatchStatusStopping  BatchStatus = "STOPPING"
	BatchStatusStopped   BatchStatus = "STOPPED"
	BatchStatusCompleted BatchStatus = "COMPLETED"
	BatchStatusFailed    BatchStatus = "FAILED"
	BatchStatusUnknown   BatchStatus = "UNKNOWN"
)

// ExitStatus represents the final outcome reported for an execution.
type ExitStatus string

const (
	ExitStatusUnknown   ExitStatus = "UNKNOWN"
	ExitStatusCompleted ExitStatus = "COMPLETED"
	ExitStatusFailed    ExitStatus = "FAILED"
	ExitStatusStopped   ExitStatus = "STOPPED"
)

// executionSequence issues process-wide monotonic execution ids.
var executionSequence atomic.Int64

// NextExecutionID returns a new execution id. Ids are unique and strictly
// increasing within a process.
func NextExecutionID() int64 {
	return executionSequence.Add(1)
}

// Execution represents a single run of a step. It owns the aggregate
// item counters; counters only advance at successful chunk boundaries,
// via Apply.
type Execution struct {
	ID             int64
	Name           string
	Status         BatchStatus
	ExitStatus     ExitStatus
	StartTime      time.Time
	EndTime        *time.Time
	LastUpdated    time.Time
	Failures       []error
	ReadCount      int
	WriteCount     int
	FilterCount    int
	ReadSkipCount  int
	CommitCount    int
	RollbackCount  int
}

// NewExecution creates a new Execution in the STARTING state with a fresh id.
func NewExecution(name string) *Execution {
	now := time.Now()
	return &Execution{
		ID:          NextExecutionID(),
		Name:        name,
		Status:      BatchStatusStarting,
		ExitStatus:  ExitStatusUnknown,
		StartTime:   now,
		LastUpdated: now,
		Failures:    make([]error, 0),
	}
}

// isValidTransition checks whether moving from the current status to the
// new status is allowed by the execution state machine.
func isValidTransition(current, next BatchStatus) bool {
	switch current {
	case BatchStatusStarting:
		return next == BatchStatusStarted || next == BatchStatusFailed || next == BatchStatusStopped
	case BatchStatusStarted:
		return next == BatchStatusCompleted || next == BatchStatusFailed ||
			next == BatchStatusStopping || next == BatchStatusStopped
	case BatchStatusStopping:
		return next == BatchStatusStopped || next == BatchStatusFailed
	case BatchStatusCompleted, BatchStatusFailed, BatchStatusStopped:
		return false
	default:
		return false
	}
}

// TransitionTo moves the execution to the given status, validating the
// transition against the state machine.
func (e *Execution) TransitionTo(next BatchStatus) error {
	if !isValidTransition(e.Status, next) {
		return fmt.Errorf("invalid status transition for execution '%s' (id: %d): %s -> %s",
			e.Name, e.ID, e.Status, next)
	}
	e.Status = next
	e.LastUpdated = time.Now()
	return nil
}

// MarkAsStarted transitions the execution to STARTED.
func (e *Execution) MarkAsStarted() {
	e.Status = BatchStatusStarted
	e.StartTime = time.Now()
	e.LastUpdated = e.StartTime
}

// MarkAsCompleted transitions the execution to COMPLETED and stamps the end time.
func (e *Execution) MarkAsCompleted() {
	now := time.Now()
	e.Status = BatchStatusCompleted
	e.ExitStatus = ExitStatusCompleted
	e.EndTime = &now
	e.LastUpdated = now
}

// MarkAsFailed transitions the execution to FAILED and records the causes.
func (e *Execution) MarkAsFailed(errs ...error) {
	now := time.Now()
	e.Status = BatchStatusFailed
	e.ExitStatus = ExitStatusFailed
	e.EndTime = &now
	e.LastUpdated = now
	for _, err := range errs {
		if err != nil {
			e.Failures = append(e.Failures, err)
		}
	}
}

// MarkAsStopped transitions the execution to STOPPED and stamps the end time.
func (e *Execution) MarkAsStopped() {
	now := time.Now()
	e.Status = BatchStatusStopped
	e.ExitStatus = ExitStatusStopped
	e.EndTime = &now
	e.LastUpdated = now
}

// AddFailure appends err to the execution's failure list without changing status.
func (e *Execution) AddFailure(err error) {
	if err != nil {
		e.Failures = append(e.Failures, err)
		e.LastUpdated = time.Now()
	}
}

// NewContribution creates an empty Contribution bound to this execution.
// The engine accumulates per-attempt progress into it; the caller applies
// it with Apply only once the attempt has succeeded.
func (e *Execution) NewContribution() *Contribution {
	return &Contribution{execution: e}
}

// Apply folds a successful attempt's contribution into the aggregate counters.
func (e *Execution) Apply(c *Contribution) {
	e.ReadCount += c.readCount
	e.WriteCount += c.writeCount
	e.FilterCount += c.filterCount
	e.ReadSkipCount += c.readSkipCount
	e.CommitCount++
	e.LastUpdated = time.Now()
}
