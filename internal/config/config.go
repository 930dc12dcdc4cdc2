// Package config defines the application configuration and its sources:
// command-line flags first, environment variables second, defaults last.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/expr"
)

// EnvPrefix is prepended to every environment variable the application
// reads.
const EnvPrefix = "FRACCALC_"

// Defaults applied before flags and environment overrides.
const (
	// DefaultTimeout bounds one evaluation run (single, batch or TUI
	// session). Expression evaluation is cheap; the margin exists for
	// very large batch files.
	DefaultTimeout = 30 * time.Second
	// DefaultAddr is the HTTP listen address for --serve.
	DefaultAddr = ":8080"
	// MaxWorkers caps --workers; beyond this the scheduler only churns.
	MaxWorkers = 256
)

// AppConfig holds the complete runtime configuration.
type AppConfig struct {
	// Expr is a single expression to evaluate. Positional arguments are
	// joined into it when the flag itself is unused.
	Expr string
	// File is a path to a newline-separated expression batch.
	File string
	// OutputFile receives the results in addition to stdout.
	OutputFile string
	// Interactive selects the line-based REPL.
	Interactive bool
	// TUI selects the full-screen calculator.
	TUI bool
	// Serve starts the HTTP API on Addr.
	Serve bool
	Addr  string
	// Demo prints the built-in arithmetic showcase.
	Demo bool
	// Float adds a decimal approximation to every printed result.
	Float bool
	// Width is the fraction component width in bits: 8, 16, 32 or 64.
	Width int
	// Workers bounds batch parallelism; 0 picks an adaptive default.
	Workers int
	Timeout time.Duration
	Quiet   bool
	Verbose bool
	NoColor bool
	// Completion names a shell to emit a completion script for.
	Completion string
}

// ParseConfig parses command-line arguments into an AppConfig and applies
// environment overrides for anything the command line left unset.
//
// Parameters:
//   - programName: The name used in usage output (argv[0]).
//   - args: The arguments after the program name.
//   - errWriter: The destination for flag parse errors and usage text.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a parse error.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Addr:    DefaultAddr,
		Width:   expr.DefaultWidth,
		Timeout: DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Expr, "expr", "", "expression to evaluate")
	fs.StringVar(&cfg.Expr, "e", "", "expression to evaluate (shorthand)")
	fs.StringVar(&cfg.File, "file", "", "file with one expression per line")
	fs.StringVar(&cfg.File, "f", "", "file with one expression per line (shorthand)")
	fs.StringVar(&cfg.OutputFile, "output", "", "also write results to this file")
	fs.StringVar(&cfg.OutputFile, "o", "", "also write results to this file (shorthand)")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "start the interactive calculator")
	fs.BoolVar(&cfg.Interactive, "i", false, "start the interactive calculator (shorthand)")
	fs.BoolVar(&cfg.TUI, "tui", false, "start the full-screen calculator")
	fs.BoolVar(&cfg.Serve, "serve", false, "start the HTTP evaluation API")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "listen address for --serve")
	fs.BoolVar(&cfg.Demo, "demo", false, "print the arithmetic showcase and exit")
	fs.BoolVar(&cfg.Float, "float", false, "also print a decimal approximation")
	fs.IntVar(&cfg.Width, "width", expr.DefaultWidth, "fraction component width in bits (8, 16, 32, 64)")
	fs.IntVar(&cfg.Workers, "workers", 0, "parallel workers for batch files (0 = automatic)")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "time limit for one run")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print results only")
	fs.BoolVar(&cfg.Quiet, "q", false, "print results only (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "print evaluation details")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.StringVar(&cfg.Completion, "completion", "", "emit a completion script (bash, zsh, fish, powershell)")

	fs.Usage = func() { printUsage(fs, programName) }

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if rest := fs.Args(); len(rest) > 0 {
		if cfg.Expr != "" {
			return cfg, apperrors.NewConfigError(
				fmt.Sprintf("unexpected arguments %q after --expr", strings.Join(rest, " ")))
		}
		cfg.Expr = strings.Join(rest, " ")
	}

	applyEnvOverrides(&cfg, fs)

	return cfg, nil
}

// Validate checks the configuration for contradictions the flag parser
// cannot see. It returns the first problem found.
func (c AppConfig) Validate() error {
	if !expr.ValidWidth(c.Width) {
		return &apperrors.ValidationError{
			Field:   "width",
			Message: fmt.Sprintf("unsupported width %d (valid: 8, 16, 32, 64)", c.Width),
		}
	}
	if c.Workers < 0 {
		return &apperrors.ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("negative worker count %d", c.Workers),
		}
	}
	if c.Workers > MaxWorkers {
		return &apperrors.ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("worker count %d exceeds the maximum of %d", c.Workers, MaxWorkers),
		}
	}
	if c.Timeout <= 0 {
		return &apperrors.ValidationError{
			Field:   "timeout",
			Message: fmt.Sprintf("non-positive timeout %s", c.Timeout),
		}
	}
	if c.Serve && c.Addr == "" {
		return &apperrors.ValidationError{
			Field:   "addr",
			Message: "empty listen address with --serve",
		}
	}
	if c.Expr != "" && c.File != "" {
		return &apperrors.ValidationError{
			Field:   "expr",
			Message: "choose one of --expr and --file, not both",
		}
	}
	return nil
}

// printUsage writes the grouped usage text.
func printUsage(fs *flag.FlagSet, programName string) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [options] [expression]\n\n", programName)
	fmt.Fprintf(out, "Evaluate exact-fraction arithmetic. Expressions combine integer\n")
	fmt.Fprintf(out, "literals with + - * /, unary minus and parentheses; \"100/150 + 2/5\"\n")
	fmt.Fprintf(out, "prints 16/15. Division by zero yields Inf or NaN, never an error.\n")
	fmt.Fprintf(out, "\nModes:\n")
	fmt.Fprintf(out, "  -e, --expr EXPR      evaluate one expression and exit\n")
	fmt.Fprintf(out, "  -f, --file PATH      evaluate a file of expressions, one per line\n")
	fmt.Fprintf(out, "  -i, --interactive    line-based interactive calculator\n")
	fmt.Fprintf(out, "      --tui            full-screen interactive calculator\n")
	fmt.Fprintf(out, "      --serve          HTTP evaluation API (see --addr)\n")
	fmt.Fprintf(out, "      --demo           print the arithmetic showcase\n")
	fmt.Fprintf(out, "      --completion SH  emit a completion script (bash, zsh, fish, powershell)\n")
	fmt.Fprintf(out, "\nEvaluation:\n")
	fmt.Fprintf(out, "      --width N        component width in bits: 8, 16, 32, 64 (default %d)\n", expr.DefaultWidth)
	fmt.Fprintf(out, "      --float          also print a decimal approximation\n")
	fmt.Fprintf(out, "      --workers N      parallel workers for batch files (default: automatic)\n")
	fmt.Fprintf(out, "      --timeout D      time limit for one run (default %s)\n", DefaultTimeout)
	fmt.Fprintf(out, "\nOutput:\n")
	fmt.Fprintf(out, "  -o, --output PATH    also write results to a file\n")
	fmt.Fprintf(out, "  -q, --quiet          print results only\n")
	fmt.Fprintf(out, "      --verbose        print evaluation details\n")
	fmt.Fprintf(out, "      --no-color       disable colored output\n")
	fmt.Fprintf(out, "      --addr ADDR      listen address for --serve (default %s)\n", DefaultAddr)
	fmt.Fprintf(out, "\n  -V, --version        print the version and exit\n")
	fmt.Fprintf(out, "  -h, --help           show this help\n")
	fmt.Fprintf(out, "\nWith no mode and no expression, the interactive calculator starts.\n")
	fmt.Fprintf(out, "Environment variables with the %s prefix override unset flags,\n", EnvPrefix)
	fmt.Fprintf(out, "for example %sWIDTH=32 or %sNO_COLOR=1.\n", EnvPrefix, EnvPrefix)
}
