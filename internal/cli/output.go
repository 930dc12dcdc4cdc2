// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayEvalResult], [DisplayQuietResult], [DisplayBatchProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agbru/fraccalc/internal/expr"
	"github.com/agbru/fraccalc/internal/format"
	"github.com/agbru/fraccalc/internal/orchestration"
	"github.com/agbru/fraccalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the result values.
	Quiet bool
	// Verbose adds a detailed breakdown of each result.
	Verbose bool
	// Float appends a decimal approximation to each result.
	Float bool
}

// WriteResultsToFile writes evaluation results to a file, one expression
// per line, preceded by a commented header. The same format serves single
// evaluations and batches.
//
// Parameters:
//   - results: The evaluation results, in input order.
//   - width: The component width the batch was evaluated at.
//   - config: Output configuration; config.OutputFile names the file.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(results []orchestration.EvalResult, width int, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	failures := 0
	for _, res := range results {
		if res.Err != nil {
			failures++
		}
	}

	// Write header
	fmt.Fprintf(file, "# Fraction Evaluation Results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Width: %d bits\n", width)
	fmt.Fprintf(file, "# Expressions: %d\n", len(results))
	fmt.Fprintf(file, "# Failures: %d\n", failures)
	fmt.Fprintf(file, "\n")

	// Write one line per expression
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(file, "%s = error: %v\n", res.Expr, res.Err)
			continue
		}
		if config.Float && res.Outcome.Finite {
			fmt.Fprintf(file, "%s = %s ≈ %s\n", res.Expr, res.Outcome.Text, formatFloat(res.Outcome.Float))
			continue
		}
		fmt.Fprintf(file, "%s = %s\n", res.Expr, res.Outcome.Text)
	}

	return nil
}

// formatFloat renders the decimal approximation with the shortest exact
// representation.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatQuietResult formats an outcome for quiet mode output.
// Returns a single-line result suitable for scripting; with withFloat the
// decimal approximation follows after a tab.
//
// Parameters:
//   - outcome: The evaluated value.
//   - withFloat: Whether to append the decimal approximation.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(outcome expr.Outcome, withFloat bool) string {
	if withFloat {
		return outcome.Text + "\t" + formatFloat(outcome.Float)
	}
	return outcome.Text
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - outcome: The evaluated value.
//   - withFloat: Whether to append the decimal approximation.
func DisplayQuietResult(out io.Writer, outcome expr.Outcome, withFloat bool) {
	fmt.Fprintln(out, FormatQuietResult(outcome, withFloat))
}

// FormatClassification names the class of an outcome: "finite",
// "infinite" or "NaN".
func FormatClassification(outcome expr.Outcome) string {
	switch {
	case outcome.Inf:
		return "infinite"
	case outcome.NaN:
		return "NaN"
	default:
		return "finite"
	}
}

// DisplayEvalResult displays one evaluation result with colors. The plain
// form is a single "expression = value" line; Verbose adds a detailed
// breakdown and Float a decimal approximation.
//
// Parameters:
//   - out: The output writer.
//   - src: The expression source text.
//   - outcome: The evaluated value.
//   - duration: The evaluation duration.
//   - config: Output configuration.
func DisplayEvalResult(out io.Writer, src string, outcome expr.Outcome, duration time.Duration, config OutputConfig) {
	fmt.Fprintf(out, "%s = %s%s%s", src, ui.ColorGreen(), outcome.Text, ui.ColorReset())
	if config.Float {
		fmt.Fprintf(out, " %s≈ %s%s", ui.ColorMagenta(), formatFloat(outcome.Float), ui.ColorReset())
	}
	fmt.Fprintln(out)

	if !config.Verbose {
		return
	}

	fmt.Fprintf(out, "\n--- Detailed evaluation analysis ---\n")
	fmt.Fprintf(out, "Canonical form:  %s%s%s\n", ui.ColorGreen(), outcome.Text, ui.ColorReset())
	fmt.Fprintf(out, "Classification:  %s%s%s\n", ui.ColorCyan(), FormatClassification(outcome), ui.ColorReset())
	fmt.Fprintf(out, "Numerator:       %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.FormatInt(outcome.Num, 10)), ui.ColorReset())
	fmt.Fprintf(out, "Denominator:     %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.FormatInt(outcome.Den, 10)), ui.ColorReset())
	fmt.Fprintf(out, "Decimal:         %s%s%s\n", ui.ColorCyan(), formatFloat(outcome.Float), ui.ColorReset())
	fmt.Fprintf(out, "Width:           %s%d bits%s\n", ui.ColorCyan(), outcome.Width, ui.ColorReset())
	fmt.Fprintf(out, "Evaluation time: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
}

// DisplayResultWithConfig displays a result with the given output
// configuration. This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - src: The expression source text.
//   - outcome: The evaluated value.
//   - duration: The evaluation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, src string, outcome expr.Outcome, duration time.Duration, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, outcome, config.Float)
	} else {
		DisplayEvalResult(out, src, outcome, duration, config)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		results := []orchestration.EvalResult{{Expr: src, Outcome: outcome, Duration: duration}}
		if err := WriteResultsToFile(results, outcome.Width, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
