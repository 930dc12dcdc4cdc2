package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI escape sequences for colorized error output.
// The CLI layer implements it from the active theme; tests and quiet mode
// can pass NoColorProvider to keep output plain.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// NoColorProvider is a ColorProvider that emits no escape sequences.
type NoColorProvider struct{}

func (NoColorProvider) Red() string    { return "" }
func (NoColorProvider) Yellow() string { return "" }
func (NoColorProvider) Reset() string  { return "" }

// HandleEvaluationError reports an evaluation failure to out and maps it to
// the process exit code for that error class. It distinguishes timeouts,
// user cancellation, configuration errors, and evaluation errors; anything
// else is treated as a generic failure.
//
// Parameters:
//   - err: The error to report. A nil error yields ExitSuccess.
//   - elapsed: How long the operation ran before failing.
//   - out: The writer for the user-facing message.
//   - colors: The color scheme for the message.
//
// Returns:
//   - int: The exit code corresponding to the error class.
func HandleEvaluationError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	var timeoutErr TimeoutError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sTimeout exceeded after %v: %v%s\n", colors.Red(), elapsed.Round(time.Millisecond), err, colors.Reset())
		return ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCanceled after %v%s\n", colors.Yellow(), elapsed.Round(time.Millisecond), colors.Reset())
		return ExitErrorCanceled
	}

	var configErr ConfigError
	if errors.As(err, &configErr) {
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	}

	var evalErr EvalError
	if errors.As(err, &evalErr) {
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorEval
	}

	fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	return ExitErrorGeneric
}
