package resilience

import (
	"context"
	"errors"
	"sync"
)

var ErrWorkerPoolClosed = errors.New("worker pool is closed")

// WorkerPool runs submitted jobs on a fixed number of goroutines.
type WorkerPool struct {
	jobs   chan func()
	closed bool
	mu     sync.RWMutex
	once   sync.Once
	wg     sync.WaitGroup
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	p := &WorkerPool{
		jobs: make(chan func(), queueSize),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}

	return p
}

func (p *WorkerPool) Submit(ctx context.Context, job func()) error {
	if job == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

func (p *WorkerPool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
}

func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// RunAll executes every task on a pool of the given size and returns one
// error slot per task, in task order. Tasks not started because ctx ended
// report ctx.Err().
func RunAll(ctx context.Context, workers int, tasks []func(context.Context) error) []error {
	errs := make([]error, len(tasks))
	pool := NewWorkerPool(workers, len(tasks))

	for i, task := range tasks {
		i, task := i, task
		if err := pool.Submit(ctx, func() {
			errs[i] = task(ctx)
		}); err != nil {
			errs[i] = err
		}
	}

	pool.Close()
	pool.Wait()
	return errs
}
