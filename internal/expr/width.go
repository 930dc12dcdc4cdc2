package expr

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Widths lists the supported component widths in bits, in ascending
// order.
var Widths = []int{8, 16, 32, 64}

// DefaultWidth is the component width used when the caller does not
// choose one.
const DefaultWidth = 64

// Outcome is the width-independent result of evaluating one expression.
// It carries everything the presentation surfaces render, so the CLI,
// REPL, TUI and HTTP server all consume the same shape.
type Outcome struct {
	// Text is the canonical rendering: "NaN", "Inf" or "num/den".
	Text string
	// Num and Den are the canonical components widened to int64.
	Num int64
	Den int64
	// Exactly one of Finite, Inf and NaN is true.
	Finite bool
	Inf    bool
	NaN    bool
	// Float is the float64 approximation; non-finite values map to the
	// IEEE infinities and NaN.
	Float float64
	// Width is the component width the expression was evaluated at.
	Width int
}

// Eval evaluates src with fraction components of the given bit width.
// The width selects the generic instantiation doing the arithmetic, so
// a narrow width makes overflow wrap exactly as the component type does.
func Eval(src string, width int) (Outcome, error) {
	switch width {
	case 8:
		return evalWidth[int8](src, width)
	case 16:
		return evalWidth[int16](src, width)
	case 32:
		return evalWidth[int32](src, width)
	case 64:
		return evalWidth[int64](src, width)
	default:
		return Outcome{}, fmt.Errorf("unsupported width %d: choose one of %v", width, Widths)
	}
}

// ValidWidth reports whether w is one of the supported widths.
func ValidWidth(w int) bool {
	for _, width := range Widths {
		if w == width {
			return true
		}
	}
	return false
}

func evalWidth[T constraints.Signed](src string, width int) (Outcome, error) {
	f, err := EvalAs[T](src)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Text:   f.String(),
		Num:    int64(f.Num()),
		Den:    int64(f.Den()),
		Finite: f.IsFinite(),
		Inf:    f.IsInf(),
		NaN:    f.IsNaN(),
		Float:  f.Float64(),
		Width:  width,
	}, nil
}
