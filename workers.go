package qalam

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	pool "github.com/jolestar/go-commons-pool"
)

// Bounds and default for the size of worker pools.
const (
	MinWorkers     = 1
	MaxWorkers     = 10
	DefaultWorkers = 4
)

// ErrPoolClosed is delivered for tasks submitted to a closed pool.
var ErrPoolClosed = errors.New("worker pool closed")

// ClampWorkers clamps n to [MinWorkers, MaxWorkers]. Zero or negative values
// select DefaultWorkers.
func ClampWorkers(n int) int {
	if n <= 0 {
		return DefaultWorkers
	}
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// A worker is a slot in a WorkerPool. Tasks hold a worker for their whole
// runtime, so no more than pool-size tasks run at the same time.
type worker struct {
	id    int64
	tasks int
}

var workerSerial int64

// WorkerPool runs tasks in the background, with at most Size() tasks active
// at any time. Tasks beyond that wait for a free worker. Tasks cannot be
// cancelled once submitted.
//
// Workers are pooled objects of a go-commons-pool object pool, which does the
// bookkeeping of borrowing and returning slots.
type WorkerPool struct {
	opool  *pool.ObjectPool
	ctx    context.Context
	size   int
	mu     sync.Mutex // guards closed and additions to wg
	closed bool
	wg     sync.WaitGroup
}

// NewWorkerPool creates a pool with size workers. size is clamped with
// ClampWorkers.
func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{size: ClampWorkers(size)}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			w := &worker{id: atomic.AddInt64(&workerSerial, 1)}
			return w, nil
		})
	wp.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = wp.size
	config.MaxIdle = wp.size
	config.BlockWhenExhausted = true
	wp.opool = pool.NewObjectPool(wp.ctx, factory, config)
	CT().Debugf("worker pool with %d workers created", wp.size)
	return wp
}

// Size returns the maximum number of concurrently active tasks.
func (wp *WorkerPool) Size() int {
	return wp.size
}

// Submit schedules task to run on a worker. The returned channel receives
// exactly one value, the task's result, and is then closed. Submit itself
// never blocks.
func (wp *WorkerPool) Submit(task func() error) <-chan error {
	done := make(chan error, 1)
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		done <- ErrPoolClosed
		close(done)
		return done
	}
	wp.wg.Add(1)
	wp.mu.Unlock()
	go func() {
		defer wp.wg.Done()
		defer close(done)
		o, err := wp.opool.BorrowObject(wp.ctx)
		if err != nil {
			done <- fmt.Errorf("borrowing worker: %w", err)
			return
		}
		w := o.(*worker)
		w.tasks++
		err = runTask(task)
		if rerr := wp.opool.ReturnObject(wp.ctx, w); rerr != nil {
			CT().Errorf("returning worker %d: %v", w.id, rerr)
		}
		done <- err
	}()
	return done
}

// runTask shields the worker from panicking tasks.
func runTask(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return task()
}

// Wait blocks until all submitted tasks have finished.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Close waits for running tasks and releases the pool. Tasks submitted after
// Close receive ErrPoolClosed.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	wp.mu.Unlock()
	wp.wg.Wait()
	wp.opool.Close(wp.ctx)
}
