package model

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionContext_PutGet(t *testing.T) {
	ec := NewExecutionContext(42)

	assert.Equal(t, int64(42), ec.ExecutionID())
	assert.NotEmpty(t, ec.InstanceID())

	ec.Put("cursor", 7)
	v, ok := ec.GetInt("cursor")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	ec.Put("name", "riptide")
	s, ok := ec.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "riptide", s)

	_, ok = ec.Get("missing")
	assert.False(t, ok)
}

func TestExecutionContext_TypedGetterMismatch(t *testing.T) {
	ec := NewExecutionContext(1)
	ec.Put("cursor", "not-an-int")

	_, ok := ec.GetInt("cursor")
	assert.False(t, ok)
}

func TestExecutionContext_Remove(t *testing.T) {
	ec := NewExecutionContext(1)
	ec.Put("k", 1)
	ec.Remove("k")

	_, ok := ec.Get("k")
	assert.False(t, ok)
	assert.Zero(t, ec.Len())
}

func TestExecutionContext_DistinctInstanceIDs(t *testing.T) {
	a := NewExecutionContext(1)
	b := NewExecutionContext(1)
	assert.NotEqual(t, a.InstanceID(), b.InstanceID())
}

func TestExecutionContext_ConcurrentAccess(t *testing.T) {
	ec := NewExecutionContext(1)
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			ec.Put(key, n)
			v, ok := ec.GetInt(key)
			assert.True(t, ok)
			assert.Equal(t, n, v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, ec.Len())
}
