package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/format"
	"github.com/agbru/fraccalc/internal/orchestration"
	"github.com/agbru/fraccalc/internal/ui"
)

// CLIColorProvider implements apperrors.ColorProvider from the active
// theme, so error reporting shares the palette with regular output.
type CLIColorProvider struct{}

// Red returns the error color of the active theme.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the warning color of the active theme.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset escape code of the active theme.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps the DisplayBatchProgress function to provide a spinner
// and progress bar display during batch evaluation.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for an ongoing batch.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayBatchProgress(wg, progressChan, total, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI
// output. It provides formatted, colorized output for evaluation results
// in the command-line interface.
type CLIResultPresenter struct {
	// Quiet drops the table decorations and the closing summary, leaving
	// one plain result line per expression for scripting.
	Quiet bool
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentBatchTable displays the batch results with expression texts,
// values, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (p CLIResultPresenter) PresentBatchTable(results []orchestration.EvalResult, opts orchestration.PresentationOptions, out io.Writer) {
	if p.Quiet || opts.Quiet {
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(out, "error: %v\n", res.Err)
				continue
			}
			DisplayQuietResult(out, res.Outcome, opts.Float)
		}
		return
	}

	fmt.Fprintf(out, "\n--- Batch Summary ---\n")

	// Find the maximum column widths for proper alignment
	maxExprLen := 10    // "Expression" header length
	maxResultLen := 6   // "Result" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		if len(res.Expr) > maxExprLen {
			maxExprLen = len(res.Expr)
		}
		if result := batchResultCell(res, opts.Float); len(result) > maxResultLen {
			maxResultLen = len(result)
		}
		if duration := batchDurationCell(res.Duration); len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sExpression%s%s   %sResult%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxExprLen-10),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxResultLen-6),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		result := batchResultCell(res, opts.Float)
		duration := batchDurationCell(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorCyan(), res.Expr, ui.ColorReset(), padRight("", maxExprLen-len(res.Expr)),
			ui.ColorGreen(), result, ui.ColorReset(), padRight("", maxResultLen-len(result)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// PresentSummary displays the closing summary line for a batch. The
// elapsed duration is the sum of the individual evaluation times, not the
// wall-clock time of the parallel run.
func (p CLIResultPresenter) PresentSummary(succeeded, failed int, elapsed time.Duration, out io.Writer) {
	if p.Quiet {
		return
	}
	color := ui.ColorGreen()
	if failed > 0 {
		color = ui.ColorYellow()
	}
	fmt.Fprintf(out, "\n%s%d evaluated: %d succeeded, %d failed%s (total evaluation time %s)\n",
		color, succeeded+failed, succeeded, failed, ui.ColorReset(),
		format.FormatExecutionDuration(elapsed))
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError handles evaluation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleEvaluationError(err, duration, out, CLIColorProvider{})
}

// batchResultCell renders the result column for one row: the canonical
// value, optionally with its decimal approximation, or "-" on failure.
func batchResultCell(res orchestration.EvalResult, withFloat bool) string {
	if res.Err != nil {
		return "-"
	}
	if withFloat && res.Outcome.Finite {
		return fmt.Sprintf("%s ≈ %s", res.Outcome.Text, formatFloat(res.Outcome.Float))
	}
	return res.Outcome.Text
}

// batchDurationCell renders the duration column for one row.
func batchDurationCell(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
