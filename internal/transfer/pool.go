package transfer

import (
	"context"
	"fmt"
	"sync"
)

// IOPool bounds the number of blocking disk operations in flight. Request
// goroutines submit a closure and wait for it; the fixed worker count keeps
// open file descriptors under control regardless of request concurrency.
//
// The pool imposes no ordering between submissions: callers that need
// serialized access to one destination must hold its lock across the call.
type IOPool struct {
	tasks  chan poolTask
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

type poolTask struct {
	fn   func()
	done chan struct{}
}

func NewIOPool(workers int) *IOPool {
	if workers <= 0 {
		workers = 5
	}
	p := &IOPool{
		tasks: make(chan poolTask, workers),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *IOPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task.fn()
		close(task.done)
	}
}

// Run executes fn on a pool worker and blocks until it has finished. The
// context is honored only while waiting for queue space; once a task is
// queued it always runs to completion, so callers holding a destination
// lock never release it with a write still in flight.
func (p *IOPool) Run(ctx context.Context, fn func()) error {
	task := poolTask{fn: fn, done: make(chan struct{})}

	// The read lock keeps Shutdown from closing the channel mid-send.
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("io pool is shut down")
	}
	select {
	case p.tasks <- task:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}

	<-task.done
	return nil
}

// Shutdown stops accepting work and waits for queued tasks to drain.
func (p *IOPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}
