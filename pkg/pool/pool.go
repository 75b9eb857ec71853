// Package pool provides a small worker pool for racing independent
// candidate searches, plus a locked reader so the workers can share one
// entropy source.
package pool

import (
	"runtime"
	"sync"
)

// Pool runs a fixed number of workers.
type Pool struct {
	workers int
	done    chan struct{}
	once    sync.Once
}

// NewPool creates a Pool with a certain number of workers.
// If count is 0, GOMAXPROCS workers are used instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: count, done: make(chan struct{})}
}

// TearDown stops the pool. Any in-flight Search winds down after its
// workers finish their current attempt. The pool must not be used again.
func (p *Pool) TearDown() {
	p.once.Do(func() { close(p.done) })
}

// Search repeatedly invokes f across all workers until count non-nil
// results have been produced, and returns them. Workers notice cancellation
// only between attempts, so a long-running f delays shutdown but never
// corrupts results.
func (p *Pool) Search(count int, f func() interface{}) []interface{} {
	results := make([]interface{}, 0, count)
	found := make(chan interface{})
	stop := make(chan struct{})
	for i := 0; i < p.workers; i++ {
		go func() {
			for {
				select {
				case <-stop:
					return
				case <-p.done:
					return
				default:
				}
				r := f()
				if r == nil {
					continue
				}
				select {
				case found <- r:
				case <-stop:
					return
				case <-p.done:
					return
				}
			}
		}()
	}
	for len(results) < count {
		results = append(results, <-found)
	}
	close(stop)
	return results
}
