package transfer

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIOPool_Run_ShouldExecuteTaskAndWaitForIt(t *testing.T) {
	// given
	pool := NewIOPool(2)
	defer pool.Shutdown()

	// when
	var ran bool
	err := pool.Run(context.Background(), func() { ran = true })

	// then: Run returning means the task has finished
	assert.NoError(t, err)
	assert.True(t, ran)
}

func TestIOPool_ShouldBoundConcurrency(t *testing.T) {
	// given
	const workers = 2
	pool := NewIOPool(workers)
	defer pool.Shutdown()

	var active, peak int64
	var wg sync.WaitGroup
	gate := make(chan struct{})

	// when: more submitters than workers
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Run(context.Background(), func() {
				n := atomic.AddInt64(&active, 1)
				for {
					p := atomic.LoadInt64(&peak)
					if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
						break
					}
				}
				<-gate
				atomic.AddInt64(&active, -1)
			})
		}()
	}
	close(gate)
	wg.Wait()

	// then
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(workers))
}

func TestIOPool_Run_ShouldHonorContextWhileQueueIsFull(t *testing.T) {
	// given: a single worker blocked on a long task and a full queue
	pool := NewIOPool(1)
	defer pool.Shutdown()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = pool.Run(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	queued := make(chan error, 1)
	go func() {
		queued <- pool.Run(context.Background(), func() {})
	}()
	for len(pool.tasks) == 0 {
		runtime.Gosched()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// when
	err := pool.Run(ctx, func() {})

	// then
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	assert.NoError(t, <-queued)
}

func TestIOPool_Shutdown_ShouldDrainAndRejectNewWork(t *testing.T) {
	// given
	pool := NewIOPool(2)

	var count int64
	for i := 0; i < 4; i++ {
		err := pool.Run(context.Background(), func() { atomic.AddInt64(&count, 1) })
		assert.NoError(t, err)
	}

	// when
	pool.Shutdown()

	// then
	assert.Equal(t, int64(4), atomic.LoadInt64(&count))
	err := pool.Run(context.Background(), func() {})
	assert.Error(t, err)
}
