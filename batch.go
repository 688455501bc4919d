package pullsync

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// BatchResult pairs a job with its resolution or error.
type BatchResult struct {
	Job        JobData
	Resolution *Resolution
	Err        error
}

// ResolveAll resolves jobs concurrently, at most limit at a time
// (limit <= 0 means twice the CPU count). Results are in input order.
// One job failing does not stop the others.
func (r *Resolver) ResolveAll(ctx context.Context, jobs []JobData, limit int) []BatchResult {
	if limit <= 0 {
		limit = runtime.NumCPU() * 2
	}

	results := make([]BatchResult, len(jobs))
	sem := semaphore.NewWeighted(int64(limit))
	var wg sync.WaitGroup

	for i, job := range jobs {
		results[i].Job = job

		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled; remaining jobs are not started.
			for j := i; j < len(jobs); j++ {
				results[j] = BatchResult{Job: jobs[j], Err: err}
			}
			break
		}

		wg.Add(1)
		go func(idx int, job JobData) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := r.Resolve(ctx, job)
			results[idx].Resolution = res
			results[idx].Err = err
		}(i, job)
	}

	wg.Wait()
	return results
}
