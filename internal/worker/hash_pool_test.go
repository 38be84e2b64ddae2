package worker

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPool_HashAndVerify(t *testing.T) {
	t.Parallel()

	pool := NewHashPool(2, 4)
	ctx := context.Background()

	hash, err := pool.Hash(ctx, "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	ok, err := pool.Verify(ctx, hash, "s3cret!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pool.Verify(ctx, hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPool_ConcurrentUse(t *testing.T) {
	t.Parallel()

	pool := NewHashPool(2, 4)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < len(errs); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = pool.Hash(ctx, "password")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestHashPool_CancelledContext(t *testing.T) {
	t.Parallel()

	pool := NewHashPool(1, 4)

	// Occupy the only slot.
	pool.slots <- struct{}{}
	defer func() { <-pool.slots }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.Hash(ctx, "password")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = pool.Verify(ctx, "hash", "password")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHashPool_DefaultWorkers(t *testing.T) {
	t.Parallel()

	pool := NewHashPool(0, 4)
	assert.Greater(t, cap(pool.slots), 0)
}
