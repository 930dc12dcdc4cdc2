// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive fraction arithmetic.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fraccalc/internal/expr"
	"github.com/agbru/fraccalc/internal/format"
	"github.com/agbru/fraccalc/internal/metrics"
	"github.com/agbru/fraccalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Width is the fraction component width in bits.
	Width int
	// Float appends a decimal approximation to every result.
	Float bool
}

// REPL represents an interactive fraction calculator session.
type REPL struct {
	config  REPLConfig
	session *metrics.Session
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(config REPLConfig) *REPL {
	if !expr.ValidWidth(config.Width) {
		config.Width = expr.DefaultWidth
	}

	return &REPL{
		config:  config,
		session: metrics.NewSession(),
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"frac> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🧮 Fraction Calculator - Interactive Mode%s             %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<expression>%s    - Evaluate it (e.g. 100/150 + 2/5)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %swidth [n]%s       - Show or set the component width (8, 16, 32, 64)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfloat [on|off]%s  - Toggle the decimal approximation\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdemo%s            - Run the arithmetic showcase\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s          - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "width", "w":
		r.cmdWidth(args)
	case "float":
		r.cmdFloat(args)
	case "demo":
		DisplayDemo(r.out)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Everything else is an expression
		r.evaluate(input)
	}

	return true
}

// evaluate runs one expression at the current width and prints the result.
func (r *REPL) evaluate(src string) {
	start := time.Now()
	outcome, err := expr.Eval(src, r.config.Width)
	duration := time.Since(start)
	r.session.RecordEval(err)

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "= %s%s%s", ui.ColorGreen(), outcome.Text, ui.ColorReset())
	if r.config.Float {
		fmt.Fprintf(r.out, " %s≈ %s%s", ui.ColorMagenta(), formatFloat(outcome.Float), ui.ColorReset())
	}
	fmt.Fprintf(r.out, "  %s(%s)%s\n", ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
}

// cmdWidth handles the "width" command.
func (r *REPL) cmdWidth(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Component width: %s%d bits%s\n", ui.ColorCyan(), r.config.Width, ui.ColorReset())
		return
	}

	w, err := strconv.Atoi(args[0])
	if err != nil || !expr.ValidWidth(w) {
		fmt.Fprintf(r.out, "%sInvalid width: %s%s (valid: 8, 16, 32, 64)\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	r.config.Width = w
	fmt.Fprintf(r.out, "Component width changed to: %s%d bits%s\n", ui.ColorGreen(), w, ui.ColorReset())
}

// cmdFloat handles the "float" command.
func (r *REPL) cmdFloat(args []string) {
	switch {
	case len(args) == 0:
		r.config.Float = !r.config.Float
	case args[0] == "on":
		r.config.Float = true
	case args[0] == "off":
		r.config.Float = false
	default:
		fmt.Fprintf(r.out, "%sUsage: float [on|off]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	status := "disabled"
	if r.config.Float {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Decimal approximation: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current REPL configuration and session counters.
func (r *REPL) cmdStatus() {
	floatStatus := "no"
	if r.config.Float {
		floatStatus = "yes"
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Width:      %s%d bits%s\n", ui.ColorCyan(), r.config.Width, ui.ColorReset())
	fmt.Fprintf(r.out, "  Float:      %s%s%s\n", ui.ColorCyan(), floatStatus, ui.ColorReset())
	fmt.Fprintf(r.out, "  Evaluated:  %s%d%s expressions (%d failed)\n",
		ui.ColorCyan(), r.session.Evaluated(), ui.ColorReset(), r.session.Failed())
	fmt.Fprintf(r.out, "  Uptime:     %s%s%s\n", ui.ColorCyan(), r.session.Uptime().Round(time.Second), ui.ColorReset())
	fmt.Fprintln(r.out)
}
