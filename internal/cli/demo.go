package cli

import (
	"fmt"
	"io"

	"github.com/agbru/fraccalc/internal/fraction"
	"github.com/agbru/fraccalc/internal/ui"
)

// DisplayDemo prints the arithmetic showcase: five fraction pairs walked
// through every operator and comparison. The pairs cover positive values,
// mixed signs, negatives, the zero/one edge and division by zero.
func DisplayDemo(out io.Writer) {
	scenarios := []struct {
		title string
		a, b  fraction.Fraction[int32]
	}{
		{"Positive values", fraction.New[int32](100, 150), fraction.New[int32](2, 5)},
		{"Positive and negative values", fraction.New[int32](30, 15), fraction.New[int32](242, -10)},
		{"Negative values", fraction.New[int32](-3, 33), fraction.New[int32](7, -21)},
		{"Zero and one", fraction.New[int32](0, 33), fraction.FromInt[int32](1)},
		{"Division by zero", fraction.New[int32](1, 0), fraction.New[int32](0, 1)},
	}

	for i, sc := range scenarios {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s--- %s: %s and %s ---%s\n", ui.ColorBold(), sc.title, sc.a, sc.b, ui.ColorReset())
		showOperations(out, sc.a, sc.b)
		showComparisons(out, sc.a, sc.b)
	}
}

// showOperations prints a op b for every arithmetic operator.
func showOperations(out io.Writer, a, b fraction.Fraction[int32]) {
	operations := []struct {
		symbol string
		result fraction.Fraction[int32]
	}{
		{"+", a.Add(b)},
		{"-", a.Sub(b)},
		{"*", a.Mul(b)},
		{"/", a.Div(b)},
	}
	for _, op := range operations {
		fmt.Fprintf(out, "  %s %s %s = %s%s%s\n", a, op.symbol, b, ui.ColorGreen(), op.result, ui.ColorReset())
	}
}

// showComparisons prints the comparisons that hold between a and b.
func showComparisons(out io.Writer, a, b fraction.Fraction[int32]) {
	comparisons := []struct {
		symbol string
		holds  bool
	}{
		{"<", a.Less(b)},
		{"<=", a.LessEqual(b)},
		{">", a.Greater(b)},
		{">=", a.GreaterEqual(b)},
		{"==", a.Equal(b)},
		{"!=", !a.Equal(b)},
	}
	for _, cmp := range comparisons {
		if cmp.holds {
			fmt.Fprintf(out, "  %s%s %s %s%s\n", ui.ColorCyan(), a, cmp.symbol, b, ui.ColorReset())
		}
	}
}
