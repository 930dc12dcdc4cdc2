package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fraccalc/internal/config"
	"github.com/agbru/fraccalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the component width, the timeout, and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating with %s%d-bit%s components and a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Width, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single expression vs batch).
//
// Parameters:
//   - expressions: The number of expressions about to be evaluated.
//   - workers: The worker bound for batch evaluation.
//   - out: The writer for standard output.
func PrintExecutionMode(expressions, workers int, out io.Writer) {
	var modeDesc string
	if expressions > 1 {
		modeDesc = fmt.Sprintf("Batch of %s%d%s expressions with %s%d%s workers",
			ui.ColorGreen(), expressions, ui.ColorReset(), ui.ColorGreen(), workers, ui.ColorReset())
	} else {
		modeDesc = "Single expression evaluation"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Evaluation ---\n")
}
