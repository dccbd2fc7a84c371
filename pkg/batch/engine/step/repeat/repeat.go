// Package repeat provides the iteration abstraction that drives chunk
// filling: a callback is invoked repeatedly until it signals FINISHED, an
// error occurs, or the completion policy ends the batch.
package repeat

import "context"

// Status is the continuation signal returned by a repeat callback.
type Status string

const (
	// StatusContinuable indicates the iteration can continue.
	StatusContinuable Status = "CONTINUABLE"
	// StatusFinished indicates the underlying source is exhausted.
	StatusFinished Status = "FINISHED"
)

// IsContinuable reports whether iteration may proceed.
func (s Status) IsContinuable() bool {
	return s == StatusContinuable
}

// Callback is one iteration of a repeated operation.
type Callback func(ctx context.Context) (Status, error)

// Operations drives a callback to completion according to some policy.
type Operations interface {
	// Iterate invokes the callback until it returns FINISHED, returns an
	// error, or the policy declares the batch complete. The returned status
	// is FINISHED only if the callback itself signalled exhaustion.
	Iterate(ctx context.Context, callback Callback) (Status, error)
}

// CompletionPolicy decides when a batch of iterations is complete.
type CompletionPolicy interface {
	// IsComplete is consulted before each iteration with the number of
	// iterations already performed in this batch.
	IsComplete(iterations int) bool
}

// Template is the default Operations implementation: a simple loop bounded
// by a CompletionPolicy.
type Template struct {
	policy CompletionPolicy
}

// NewTemplate creates a Template with the given completion policy.
func NewTemplate(policy CompletionPolicy) *Template {
	return &Template{policy: policy}
}

// NewFixedChunkTemplate creates a Template that completes after size iterations.
func NewFixedChunkTemplate(size int) *Template {
	return NewTemplate(NewFixedCountPolicy(size))
}

// Iterate implements Operations. Context cancellation stops the loop
// between iterations.
func (t *Template) Iterate(ctx context.Context, callback Callback) (Status, error) {
	status := StatusContinuable
	for i := 0; status.IsContinuable() && !t.policy.IsComplete(i); i++ {
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		default:
		}
		var err error
		status, err = callback(ctx)
		if err != nil {
			return status, err
		}
	}
	return status, nil
}

// fixedCountPolicy completes a batch after a fixed number of iterations.
type fixedCountPolicy struct {
	count int
}

// NewFixedCountPolicy creates a CompletionPolicy that completes after count
// iterations. This is the chunk-size policy of the chunk engine.
func NewFixedCountPolicy(count int) CompletionPolicy {
	return &fixedCountPolicy{count: count}
}

func (p *fixedCountPolicy) IsComplete(iterations int) bool {
	return iterations >= p.count
}
