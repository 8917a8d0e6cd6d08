package tasks

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/desertthunder/tsk/internal/shared"
	"golang.org/x/time/rate"
)

// TaskDeleter deletes a single task by id.
// This abstraction allows for easier testing and decoupling from the concrete client.
type TaskDeleter interface {
	DeleteTask(ctx context.Context, id int64) error
}

// ClearOpts contains configuration for bulk clear runs.
type ClearOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, capped at 8)
	RateLimit  float64 // Deletes per second (default: 10)
}

// ClearResult records one task's removal attempt.
type ClearResult struct {
	ID      int64
	Success bool
	Err     error
}

// ClearSummary aggregates a full bulk clear run.
type ClearSummary struct {
	Total   int
	Cleared int
	Failed  int
	Results []ClearResult
}

// ClearCompleted deletes the given ids concurrently through a bounded worker
// pool with rate limiting.
//
// Each delete is independent: a failure is recorded in the summary and never
// aborts the remaining ids. Results are streamed to prog as they land (when
// prog is non-nil) and returned sorted by id.
func ClearCompleted(ctx context.Context, api TaskDeleter, ids []int64, opts ClearOpts, prog chan<- ClearResult) (*ClearSummary, error) {
	if api == nil {
		return nil, fmt.Errorf("%w: task service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10.0
	}

	summary := &ClearSummary{
		Total:   len(ids),
		Results: make([]ClearResult, 0, len(ids)),
	}
	if len(ids) == 0 {
		return summary, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan int64, len(ids))
	results := make(chan ClearResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go clearWorker(ctx, &wg, api, limiter, jobs, results)
	}

	for _, id := range ids {
		jobs <- id
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		summary.Results = append(summary.Results, res)
		if res.Success {
			summary.Cleared++
		} else {
			summary.Failed++
		}
		sendResult(prog, res)
	}

	slices.SortFunc(summary.Results, func(a, b ClearResult) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return summary, nil
}

// clearWorker is a worker goroutine that deletes tasks from the jobs channel.
func clearWorker(ctx context.Context, wg *sync.WaitGroup, api TaskDeleter, limiter *rate.Limiter, jobs <-chan int64, results chan<- ClearResult) {
	defer wg.Done()

	for id := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- ClearResult{ID: id, Err: err}
			continue
		}

		err := api.DeleteTask(ctx, id)
		results <- ClearResult{ID: id, Success: err == nil, Err: err}
	}
}

// sendResult sends a result through the channel without blocking.
// Uses select with default so result reporting never blocks the pool.
func sendResult(prog chan<- ClearResult, res ClearResult) {
	if prog == nil {
		return
	}
	select {
	case prog <- res:
	default:
	}
}
