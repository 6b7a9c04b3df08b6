// Package parallel runs independent jobs over a fixed set of workers.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits a job to the pool.
	WorkerFunc func(func())
	// WaitFunc blocks until submitted jobs finish; done closes the pool.
	WaitFunc func(done bool)
	// CancelFunc stops the pool from accepting further jobs.
	CancelFunc func()
)

// Pool distributes jobs over worker goroutines. A single-worker pool
// degenerates to running jobs inline on submission.
type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start launches numWorkers workers; anything below 1 means one worker
// per available CPU.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		jobs := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range jobs {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			jobs <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(jobs) })
	}

	return pool
}
