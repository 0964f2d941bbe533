// Package queue provides a serial work queue.
//
// A Serial runs submitted functions one at a time, in submission order, on
// a single goroutine it owns. The render pipeline uses one per renderer so
// that asynchronous snapshots never overlap and complete in the order they
// were requested.
package queue

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/imgedit/internal/logging"
)

// Serial is a FIFO queue drained by one worker goroutine.
//
// Thread safety: Serial is safe for concurrent use.
type Serial struct {
	// name labels log records.
	name string

	mu      sync.Mutex
	pending []func()

	// wake has capacity 1; a send means pending may be non-empty.
	wake chan struct{}

	// done signals the worker to drain and stop.
	done chan struct{}

	// wg waits for the worker to finish.
	wg sync.WaitGroup

	// running indicates whether the queue is accepting work.
	running atomic.Bool

	// active counts work that is queued or executing.
	active sync.WaitGroup
}

// NewSerial creates a queue and starts its worker.
func NewSerial(name string) *Serial {
	q := &Serial{
		name: name,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	q.running.Store(true)

	q.wg.Add(1)
	go q.worker()

	return q
}

func (q *Serial) worker() {
	defer q.wg.Done()

	for {
		if fn := q.pop(); fn != nil {
			q.run(fn)
			continue
		}
		select {
		case <-q.wake:
		case <-q.done:
			for fn := q.pop(); fn != nil; fn = q.pop() {
				q.run(fn)
			}
			return
		}
	}
}

func (q *Serial) pop() func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	fn := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return fn
}

// run executes fn and keeps the worker alive if it panics.
func (q *Serial) run(fn func()) {
	defer q.active.Done()
	defer func() {
		if r := recover(); r != nil {
			logging.Logger().Error("queue: task panicked", "queue", q.name, "panic", r)
		}
	}()
	fn()
}

// Submit appends fn to the queue. It never blocks. It returns false, and
// fn is not run, when the queue is closed.
func (q *Serial) Submit(fn func()) bool {
	if fn == nil {
		return false
	}
	q.mu.Lock()
	if !q.running.Load() {
		q.mu.Unlock()
		return false
	}
	q.active.Add(1)
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Wait blocks until all submitted work has finished.
func (q *Serial) Wait() {
	q.active.Wait()
}

// Pending returns the number of queued tasks that have not started.
func (q *Serial) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// IsRunning returns true if the queue is still accepting work.
func (q *Serial) IsRunning() bool {
	return q.running.Load()
}

// Close stops accepting work, runs everything already queued and stops the
// worker. Close is safe to call multiple times. It must not be called
// from a task; use Stop there.
func (q *Serial) Close() {
	q.Stop()
	q.wg.Wait()
}

// Stop stops accepting work without waiting. The worker still runs
// everything already queued before it exits. Stop is safe to call from a
// task and more than once.
func (q *Serial) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running.CompareAndSwap(true, false) {
		close(q.done)
	}
}
