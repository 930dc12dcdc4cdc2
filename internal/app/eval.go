package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/agbru/fraccalc/internal/cli"
	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/orchestration"
	"github.com/agbru/fraccalc/internal/ui"
)

// runSingle evaluates the configured expression and renders the result.
func (a *Application) runSingle(ctx context.Context, out io.Writer) int {
	// Lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(1, 1, out)
	}

	// A single expression needs no progress display.
	results := orchestration.ExecuteBatch(ctx, []string{a.Config.Expr}, a.Config.Width, 1,
		orchestration.NullProgressReporter{}, io.Discard)

	res := results[0]
	if res.Err != nil {
		presenter := cli.CLIResultPresenter{Quiet: a.Config.Quiet}
		return presenter.HandleError(apperrors.NewEvalError(res.Expr, res.Err), res.Duration, out)
	}

	if err := cli.DisplayResultWithConfig(out, res.Expr, res.Outcome, res.Duration, a.outputConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runBatch evaluates a newline-separated expression file concurrently.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	exprs, err := a.loadBatch()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error reading %s: %v\n", a.Config.File, err)
		return apperrors.ExitErrorConfig
	}
	if len(exprs) == 0 {
		fmt.Fprintf(a.ErrWriter, "No expressions found in %s.\n", a.Config.File)
		return apperrors.ExitErrorConfig
	}

	// Lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	workers := resolveWorkers(a.Config.Workers)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(len(exprs), workers, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	results := orchestration.ExecuteBatch(ctx, exprs, a.Config.Width, workers, progressReporter, progressOut)

	presenter := cli.CLIResultPresenter{Quiet: a.Config.Quiet}
	exitCode := orchestration.AnalyzeBatchResults(results, a.presentationOptions(), presenter, presenter, out)

	if a.Config.OutputFile != "" {
		if err := cli.WriteResultsToFile(results, a.Config.Width, a.outputConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving results: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// loadBatch reads the configured expression file.
func (a *Application) loadBatch() ([]string, error) {
	f, err := os.Open(a.Config.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return orchestration.LoadExpressions(f)
}

// resolveWorkers maps the workers flag to a concrete pool size. Zero
// asks for one worker per logical processor.
func resolveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}
	return runtime.GOMAXPROCS(0)
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Float:      a.Config.Float,
	}
}

func (a *Application) presentationOptions() orchestration.PresentationOptions {
	return orchestration.PresentationOptions{
		Float:   a.Config.Float,
		Verbose: a.Config.Verbose,
		Quiet:   a.Config.Quiet,
	}
}
