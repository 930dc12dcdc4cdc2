package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/expr"
)

// ExecuteBatch orchestrates the concurrent evaluation of a batch of
// expressions.
//
// It manages the lifecycle of worker goroutines, collects their results in
// input order, and coordinates the display of progress updates. This function
// is the core of the application's concurrency model.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - exprs: The expression texts to evaluate.
//   - width: The component width in bits (8, 16, 32 or 64).
//   - workers: The maximum number of concurrent evaluations; 0 or less means unbounded.
//   - progressReporter: The progress reporter for displaying updates (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []EvalResult: One result per input expression, in input order.
func ExecuteBatch(ctx context.Context, exprs []string, width, workers int, progressReporter ProgressReporter, out io.Writer) []EvalResult {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	results := make([]EvalResult, len(exprs))
	// Every worker sends exactly one update, so a full-size buffer means
	// sends never block even if the reporter lags.
	progressChan := make(chan ProgressUpdate, len(exprs))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(exprs), out)

	for i, src := range exprs {
		idx, line := i, src
		g.Go(func() error {
			startTime := time.Now()
			res := EvalResult{Index: idx, Expr: line}
			if err := ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.Outcome, res.Err = expr.Eval(line, width)
			}
			res.Duration = time.Since(startTime)
			results[idx] = res
			progressChan <- ProgressUpdate{Index: idx, Failed: res.Err != nil}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeBatchResults processes the results of a batch and generates a
// summary report.
//
// It presents the per-expression table in input order, counts successes and
// failures, and determines the global exit code from the individual outcomes.
//
// Parameters:
//   - results: The slice of evaluation results to analyze.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - handler: The error handler that maps the first failure to an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeBatchResults(results []EvalResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	var firstFailed *EvalResult
	succeeded := 0
	var elapsed time.Duration

	for i := range results {
		elapsed += results[i].Duration
		if results[i].Err != nil {
			if firstFailed == nil {
				firstFailed = &results[i]
			}
		} else {
			succeeded++
		}
	}

	presenter.PresentBatchTable(results, opts, out)
	presenter.PresentSummary(succeeded, len(results)-succeeded, elapsed, out)

	if firstFailed == nil {
		return apperrors.ExitSuccess
	}
	return handler.HandleError(apperrors.NewEvalError(firstFailed.Expr, firstFailed.Err), firstFailed.Duration, out)
}
