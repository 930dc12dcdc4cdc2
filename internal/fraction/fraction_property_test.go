package fraction

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Component generators stay within ±100000 so every cross product in the
// combine formulas is far below the int64 limits; overflow behaviour is
// out of scope for these properties.

// TestCanonicalForm_PropertyBased verifies the representation invariant
// maintained by New and by every arithmetic result:
//
//	den >= 0, and whenever den > 0: gcd(|num|, den) == 1, with 0 stored as 0/1
//
// It also checks that construction preserves the represented value and is
// idempotent on its own output.
func TestCanonicalForm_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("New yields a reduced pair with non-negative denominator", prop.ForAll(
		func(num, den int64) bool {
			f := New(num, den)
			if f.Den() < 0 {
				return false
			}
			if f.Den() == 0 {
				// Non-finite values keep the supplied numerator.
				return f.Num() == num
			}
			if gcd(f.Num(), f.Den()) != 1 {
				return false
			}
			if f.Num() == 0 && f.Den() != 1 {
				return false
			}
			// Cross-multiplication: the canonical pair represents the
			// same rational as the raw input.
			return f.Num()*den == num*f.Den()
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(-100000, 100000),
	))

	properties.Property("New is idempotent", prop.ForAll(
		func(num, den int64) bool {
			f := New(num, den)
			return New(f.Num(), f.Den()).Equal(f)
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(-100000, 100000),
	))

	properties.TestingRun(t)
}

// TestArithmeticAlgebra_PropertyBased verifies the algebraic identities of
// the four operations on finite values:
//
//	a + b == b + a        a * b == b * a
//	(a - b) + b == a      (a * b) / b == a  for b != 0
func TestArithmeticAlgebra_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("addition is commutative", prop.ForAll(
		func(aNum, aDen, bNum, bDen int64) bool {
			if aDen == 0 {
				aDen = 1
			}
			if bDen == 0 {
				bDen = 1
			}
			a, b := New(aNum, aDen), New(bNum, bDen)
			return a.Add(b).Equal(b.Add(a))
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
	))

	properties.Property("multiplication is commutative", prop.ForAll(
		func(aNum, aDen, bNum, bDen int64) bool {
			if aDen == 0 {
				aDen = 1
			}
			if bDen == 0 {
				bDen = 1
			}
			a, b := New(aNum, aDen), New(bNum, bDen)
			return a.Mul(b).Equal(b.Mul(a))
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
	))

	properties.Property("subtraction then addition restores the left operand", prop.ForAll(
		func(aNum, aDen, bNum, bDen int64) bool {
			if aDen == 0 {
				aDen = 1
			}
			if bDen == 0 {
				bDen = 1
			}
			a, b := New(aNum, aDen), New(bNum, bDen)
			return a.Sub(b).Add(b).Equal(a)
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
	))

	properties.Property("division undoes multiplication", prop.ForAll(
		func(aNum, aDen, bNum, bDen int64) bool {
			if aDen == 0 {
				aDen = 1
			}
			if bNum == 0 {
				bNum = 1
			}
			if bDen == 0 {
				bDen = 1
			}
			a, b := New(aNum, aDen), New(bNum, bDen)
			return a.Mul(b).Div(b).Equal(a)
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
	))

	properties.Property("adding zero and multiplying by one are identities", prop.ForAll(
		func(num, den int64) bool {
			if den == 0 {
				den = 1
			}
			f := New(num, den)
			return f.Add(New[int64](0, 1)).Equal(f) && f.Mul(FromInt[int64](1)).Equal(f)
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
	))

	properties.Property("negation is an involution", prop.ForAll(
		func(num, den int64) bool {
			f := New(num, den)
			return f.Neg().Neg().Equal(f)
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(-100000, 100000),
	))

	properties.TestingRun(t)
}

// TestOrderingConsistency_PropertyBased verifies that the derived
// comparisons restate the two primitives and that finite values obey
// trichotomy.
func TestOrderingConsistency_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// The small denominator range lets zero through, so non-finite values
	// are exercised too.
	properties.Property("derived comparisons agree with the primitives", prop.ForAll(
		func(aNum, aDen, bNum, bDen int64) bool {
			a, b := New(aNum, aDen), New(bNum, bDen)
			if a.Less(b) != b.Greater(a) {
				return false
			}
			if a.GreaterEqual(b) != !a.Less(b) {
				return false
			}
			return a.LessEqual(b) == !a.Greater(b)
		},
		gen.Int64Range(-100, 100),
		gen.Int64Range(-100, 100),
		gen.Int64Range(-100, 100),
		gen.Int64Range(-100, 100),
	))

	properties.Property("finite values obey trichotomy", prop.ForAll(
		func(aNum, aDen, bNum, bDen int64) bool {
			if aDen == 0 {
				aDen = 1
			}
			if bDen == 0 {
				bDen = 1
			}
			a, b := New(aNum, aDen), New(bNum, bDen)
			count := 0
			for _, holds := range []bool{a.Less(b), a.Equal(b), a.Greater(b)} {
				if holds {
					count++
				}
			}
			return count == 1
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
	))

	properties.Property("ordering agrees with the sign of the difference", prop.ForAll(
		func(aNum, aDen, bNum, bDen int64) bool {
			if aDen == 0 {
				aDen = 1
			}
			if bDen == 0 {
				bDen = 1
			}
			a, b := New(aNum, aDen), New(bNum, bDen)
			return a.Greater(b) == (a.Sub(b).Sign() > 0)
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
	))

	properties.TestingRun(t)
}

// TestTextRoundTrip_PropertyBased verifies that Parse inverts String for
// every finite value.
func TestTextRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("String then Parse restores every finite value", prop.ForAll(
		func(num, den int64) bool {
			if den == 0 {
				den = 1
			}
			f := New(num, den)
			parsed, err := Parse[int64](f.String())
			if err != nil {
				t.Logf("Parse(%q): %v", f.String(), err)
				return false
			}
			return parsed.Equal(f)
		},
		gen.Int64Range(-100000, 100000),
		gen.Int64Range(1, 100000),
	))

	properties.TestingRun(t)
}
