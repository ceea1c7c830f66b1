package rawpix

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// parallelRows fans fn out across row chunks with at most maxWorkers
// goroutines (all CPUs when maxWorkers is 0). Cancellation is polled
// between rows; the return value is false when any worker stopped early.
func parallelRows(ctx context.Context, total, maxWorkers int, fn func(y int)) bool {
	if total <= 0 {
		return true
	}

	workers := runtime.GOMAXPROCS(0)
	if maxWorkers > 0 && workers > maxWorkers {
		workers = maxWorkers
	}

	if workers > total {
		workers = total
	}

	if workers <= 1 {
		for y := 0; y < total; y++ {
			if ctx.Err() != nil {
				return false
			}

			fn(y)
		}

		return true
	}

	step := (total + workers - 1) / workers

	var (
		wg        sync.WaitGroup
		cancelled atomic.Bool
	)

	for i := 0; i < workers; i++ {
		start := i * step
		end := start + step

		if end > total {
			end = total
		}

		if start >= end {
			break
		}

		wg.Add(1)

		go func(s, e int) {
			defer wg.Done()

			for y := s; y < e; y++ {
				if ctx.Err() != nil {
					cancelled.Store(true)

					return
				}

				fn(y)
			}
		}(start, end)
	}

	wg.Wait()

	return !cancelled.Load()
}
