package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/fraccalc/internal/expr"
)

// EvalResult encapsulates the outcome of a single expression evaluation.
// It serves as the shared domain type between orchestration and presentation layers.
type EvalResult struct {
	// Index is the zero-based position of the expression in the batch.
	Index int
	// Expr is the source text that was evaluated.
	Expr string
	// Outcome is the evaluated value. It is meaningful only when Err is nil.
	Outcome expr.Outcome
	// Duration is the time taken to evaluate the expression.
	Duration time.Duration
	// Err contains any error that occurred during evaluation.
	Err error
}

// ProgressUpdate signals that one expression of a batch has finished.
type ProgressUpdate struct {
	// Index is the position of the finished expression in the batch.
	Index int
	// Failed reports whether the evaluation ended in an error.
	Failed bool
}

// PresentationOptions configures how batch results are presented to the user.
type PresentationOptions struct {
	Float   bool
	Verbose bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying batch progress.
// This interface decouples the orchestration layer from the presentation layer,
// following Clean Architecture principles where business logic should not
// depend on UI concerns.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer focuses on coordinating
// the evaluations.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving completion updates from workers.
	//   - total: The number of expressions in the batch.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting batch results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats (CLI, file, etc.) without modifying
// the orchestration logic.
type ResultPresenter interface {
	// PresentBatchTable displays the per-expression results table.
	PresentBatchTable(results []EvalResult, opts PresentationOptions, out io.Writer)

	// PresentSummary displays the closing summary line for a batch.
	PresentSummary(succeeded, failed int, elapsed time.Duration, out io.Writer)
}

// ErrorHandler handles evaluation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
