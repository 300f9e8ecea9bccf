package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolExecutePreservesInputOrder(t *testing.T) {
	pool := NewPool(4, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})

	inputs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	results := pool.Execute(context.Background(), inputs)

	require.Len(t, results, len(inputs))
	for i, task := range results {
		assert.Equal(t, inputs[i], task.Input)
		assert.Equal(t, inputs[i]*2, task.Result)
		assert.NoError(t, task.Err)
	}
}

func TestPoolRecordsPerTaskErrors(t *testing.T) {
	pool := NewPool(2, func(ctx context.Context, n int) (int, error) {
		if n%2 == 0 {
			return 0, fmt.Errorf("even input %d", n)
		}
		return n, nil
	})

	results := pool.Execute(context.Background(), []int{1, 2, 3, 4})

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Error(t, results[3].Err)
}

func TestPoolClampsWorkerCount(t *testing.T) {
	pool := NewPool(0, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	results := pool.Execute(context.Background(), []int{42})
	require.Len(t, results, 1)
	assert.Equal(t, 42, results[0].Result)
}

func TestPoolMarksUnprocessedTasksOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(1, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	results := pool.Execute(ctx, []int{1, 2, 3})

	require.Len(t, results, 3)
	for i, task := range results {
		assert.Equal(t, i+1, task.Input)
		// A task either ran to completion or reports the cancellation;
		// none may masquerade as a zero-value success.
		if task.Err != nil {
			assert.ErrorIs(t, task.Err, context.Canceled)
		} else {
			assert.Equal(t, i+1, task.Result)
		}
	}
}

func TestPoolCancelledBeforeSendFailsAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	started := make(chan struct{}, 3)
	pool := NewPool(1, func(ctx context.Context, n int) (int, error) {
		started <- struct{}{}
		return n, nil
	})
	results := pool.Execute(ctx, []int{1, 2, 3})

	// With the context already cancelled the workers exit immediately, so
	// at least the tasks they never picked up must carry the error.
	failed := 0
	for _, task := range results {
		if task.Err != nil {
			failed++
		}
	}
	assert.Equal(t, len(results)-len(started), failed)
}
