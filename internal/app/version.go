package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the release version. It is overridden at build time via
// -ldflags "-X github.com/agbru/fraccalc/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args request the version fast path.
// The check runs before flag parsing so --version works regardless of
// what else is on the command line.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fraccalc %s (%s, %s/%s)\n",
		Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
