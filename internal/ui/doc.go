// Package ui provides theme and color support for the calculator's user
// interfaces. It defines color schemes for the CLI, the REPL and the
// full-screen TUI, and exposes ANSI escape code accessors so every
// presentation surface styles results the same way.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between evaluation logic and presentation.
package ui
