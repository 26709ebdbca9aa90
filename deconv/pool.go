// SPDX-License-Identifier: MIT

package deconv

import (
	"context"
	"sync"
)

// forEach runs fn(i) for every i in [0, n) on at most workers goroutines.
// fn must write its result by index. The context is checked before each
// index is handed out; the first error (or ctx.Err()) is returned once all
// started calls have finished.
func forEach(ctx context.Context, n, workers int, fn func(i int) error) error {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		stopOnce sync.Once
		firstErr error
	)
	done := make(chan struct{})
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		stopOnce.Do(func() { close(done) })
	}

	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := fn(i); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}
		select {
		case jobs <- i:
		case <-done:
			break feed
		case <-ctx.Done():
			fail(ctx.Err())
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return firstErr
}
