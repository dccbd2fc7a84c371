package retry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riptidekit/riptide/pkg/batch/support/util/exception"
)

func TestDefaultRetryPolicy_RetryableBatchError(t *testing.T) {
	policy := NewDefaultRetryPolicyFactory().CreatePolicy(3, 10*time.Millisecond, nil)

	retryable := exception.NewBatchError("writer", "transient failure", errors.New("io")).SetRetryable(true)
	permanent := exception.NewBatchError("writer", "bad record", errors.New("parse"))

	assert.True(t, policy.ShouldRetry(retryable))
	assert.False(t, policy.ShouldRetry(permanent))
	assert.False(t, policy.ShouldRetry(nil))
}

func TestDefaultRetryPolicy_MatchesConfiguredTargets(t *testing.T) {
	target := errors.New("connection reset")
	policy := NewDefaultRetryPolicyFactory().CreatePolicy(3, 0, []error{target})

	assert.True(t, policy.ShouldRetry(target))
	assert.True(t, policy.ShouldRetry(fmt.Errorf("write: %w", target)))
	assert.False(t, policy.ShouldRetry(errors.New("other")))
}

func TestDefaultRetryPolicy_BackoffDoubles(t *testing.T) {
	policy := NewDefaultRetryPolicyFactory().CreatePolicy(4, 100*time.Millisecond, nil)

	assert.Equal(t, 100*time.Millisecond, policy.GetBackoffInterval(1))
	assert.Equal(t, 200*time.Millisecond, policy.GetBackoffInterval(2))
	assert.Equal(t, 400*time.Millisecond, policy.GetBackoffInterval(3))
}

func TestDefaultRetryPolicy_MinimumOneAttempt(t *testing.T) {
	policy := NewDefaultRetryPolicyFactory().CreatePolicy(0, 0, nil)
	assert.Equal(t, 1, policy.GetMaxAttempts())
}

func TestNoRetryPolicy(t *testing.T) {
	policy := NewNoRetryPolicy()

	assert.False(t, policy.ShouldRetry(errors.New("any")))
	assert.Equal(t, 1, policy.GetMaxAttempts())
	assert.Zero(t, policy.GetBackoffInterval(1))
}
