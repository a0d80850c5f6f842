package pipeline

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	perrors "github.com/matzehuels/pandiff/pkg/errors"
	pio "github.com/matzehuels/pandiff/pkg/io"
)

// BatchResult is the outcome of one pair of a batch.
type BatchResult struct {
	Index   int
	Options Options
	Result  *Result
	Err     error
}

// ExecuteBatch runs Execute for every job, at most concurrency at a time.
// A failing pair does not stop the others; its error is recorded in its
// BatchResult. A pair whose output path repeats an earlier pair's fails
// without running. Cancelling ctx stops pairs that have not started yet, and
// the context's error is returned.
func (r *Runner) ExecuteBatch(ctx context.Context, jobs []Options, concurrency int) ([]BatchResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]BatchResult, len(jobs))
	outputs := make(map[string]int, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		results[i] = BatchResult{Index: i, Options: job}
		if err := validateBatchJob(job); err != nil {
			results[i].Err = err
			continue
		}
		out := filepath.Clean(job.Output)
		if first, ok := outputs[out]; ok {
			results[i].Err = perrors.New(perrors.ErrCodeInvalidPath, "output %s is already written by pair %d", job.Output, first+1)
			continue
		}
		outputs[out] = i

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			if job.Logger == nil {
				job.Logger = r.Logger.With("pair", i+1)
			}
			results[i].Result, results[i].Err = r.Execute(gctx, job)
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}

// validateBatchJob rejects pairs that would share standard streams with
// other pairs.
func validateBatchJob(job Options) error {
	if job.Before == pio.Stdio || job.After == pio.Stdio {
		return perrors.New(perrors.ErrCodeInvalidPath, "batch pairs cannot read from stdin")
	}
	if job.Output == "" || job.Output == pio.Stdio {
		return perrors.New(perrors.ErrCodeInvalidPath, "batch pairs need an output file")
	}
	return nil
}

// Failed counts the results that carry an error.
func Failed(results []BatchResult) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
