// Package retry defines the attempt-level retry policy used by the chunk
// step driver to decide whether a failed attempt should be re-run from its
// checkpoint.
package retry

import (
	"errors"
	"time"

	"github.com/riptidekit/riptide/pkg/batch/support/util/exception"
)

// RetryPolicy decides whether an attempt failure is transient and how long
// to back off before the next attempt.
type RetryPolicy interface {
	// ShouldRetry reports whether the given error is considered transient.
	ShouldRetry(err error) bool
	// GetBackoffInterval returns the wait before the given attempt number (1-based).
	GetBackoffInterval(attempt int) time.Duration
	// GetMaxAttempts returns the maximum number of attempts, including the first.
	GetMaxAttempts() int
}

// RetryPolicyFactory creates RetryPolicy instances from configuration values.
type RetryPolicyFactory interface {
	CreatePolicy(maxAttempts int, initialInterval time.Duration, retryableErrors []error) RetryPolicy
}

// DefaultRetryPolicyFactory creates defaultRetryPolicy instances.
type DefaultRetryPolicyFactory struct{}

// NewDefaultRetryPolicyFactory creates a new DefaultRetryPolicyFactory.
func NewDefaultRetryPolicyFactory() *DefaultRetryPolicyFactory {
	return &DefaultRetryPolicyFactory{}
}

// CreatePolicy creates the default policy. An error is retryable when it is
// a BatchError flagged retryable, or matches one of retryableErrors via
// errors.Is.
func (f *DefaultRetryPolicyFactory) CreatePolicy(maxAttempts int, initialInterval time.Duration, retryableErrors []error) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &defaultRetryPolicy{
		maxAttempts:     maxAttempts,
		initialInterval: initialInterval,
		retryableErrors: retryableErrors,
	}
}

type defaultRetryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	retryableErrors []error
}

func (p *defaultRetryPolicy) ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var be *exception.BatchError
	if errors.As(err, &be) && be.IsRetryable() {
		return true
	}
	for _, target := range p.retryableErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// GetBackoffInterval doubles the initial interval for each attempt after
// the first.
func (p *defaultRetryPolicy) GetBackoffInterval(attempt int) time.Duration {
	if attempt <= 1 {
		return p.initialInterval
	}
	interval := p.initialInterval
	for i := 1; i < attempt; i++ {
		interval *= 2
	}
	return interval
}

func (p *defaultRetryPolicy) GetMaxAttempts() int {
	return p.maxAttempts
}

// NoRetryPolicy never retries. Useful when failures must surface immediately.
type NoRetryPolicy struct{}

// NewNoRetryPolicy creates a policy that never retries.
func NewNoRetryPolicy() *NoRetryPolicy {
	return &NoRetryPolicy{}
}

func (p *NoRetryPolicy) ShouldRetry(err error) bool { return false }

func (p *NoRetryPolicy) GetBackoffInterval(attempt int) time.Duration { return 0 }

func (p *NoRetryPolicy) GetMaxAttempts() int { return 1 }
