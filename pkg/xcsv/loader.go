package xcsv

import (
	"context"
	"runtime"
	"sync"

	"github.com/brianbland/xcsvplot/pkg/dataset"
)

// loadJob is one file queued for the loader's worker pool.
type loadJob struct {
	index int
	path  string
}

// loadResult is the outcome of reading one file.
type loadResult struct {
	index   int
	dataset *dataset.Dataset
	err     error
}

// ReadFiles reads every path with up to workers concurrent readers and
// returns the datasets in the order of paths. When more than one file fails,
// the error for the earliest path is returned. A workers value <= 0 uses
// GOMAXPROCS.
func ReadFiles(ctx context.Context, paths []string, workers int) ([]*dataset.Dataset, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan loadJob, len(paths))
	results := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker(ctx, jobs, results, &wg)
	}

	for i, path := range paths {
		jobs <- loadJob{index: i, path: path}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	datasets := make([]*dataset.Dataset, len(paths))
	errs := make([]error, len(paths))
	for result := range results {
		datasets[result.index] = result.dataset
		errs[result.index] = result.err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return datasets, nil
}

func worker(ctx context.Context, jobs <-chan loadJob, results chan<- loadResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- loadResult{index: job.index, err: ctx.Err()}
			continue
		default:
		}

		ds, err := ReadFile(job.path)
		results <- loadResult{index: job.index, dataset: ds, err: err}
	}
}
