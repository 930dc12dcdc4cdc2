package fraction

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Fraction is an exact rational number num/den over a signed fixed-width
// integer type T. The zero value is NaN; use New or FromInt to construct
// numbers.
//
// Every Fraction produced by this package is in canonical form:
//
//   - den >= 0;
//   - when den > 0 the pair is fully reduced (gcd(|num|, den) == 1), with
//     zero represented as 0/1;
//   - den == 0 encodes a non-finite value: num != 0 is a signed infinity,
//     num == 0 is NaN.
//
// Every value is exactly one of finite, infinite, or NaN. Degenerate
// inputs are never rejected: constructing with or dividing by a zero
// denominator yields a value classified by IsInf or IsNaN rather than an
// error.
//
// Arithmetic does not detect overflow of T. The cross products in Add and
// friends wrap like ordinary integer arithmetic, so callers choose a T
// wide enough for their inputs. Mixing different instantiations (say
// Fraction[int32] with Fraction[int64]) is not supported; convert the
// operands explicitly first.
type Fraction[T constraints.Signed] struct {
	num T
	den T
}

// New returns the canonical fraction num/den. A negative denominator moves
// its sign to the numerator. A zero denominator is kept as-is and the
// numerator's sign stands, producing Inf (num != 0) or NaN (num == 0).
// New never fails.
func New[T constraints.Signed](num, den T) Fraction[T] {
	f := Fraction[T]{num: num, den: den}
	f.normalize()
	return f
}

// FromInt returns the whole number n as the canonical fraction n/1.
func FromInt[T constraints.Signed](n T) Fraction[T] {
	return Fraction[T]{num: n, den: 1}
}

// Num returns the canonical numerator. It carries the value's sign.
func (f Fraction[T]) Num() T { return f.num }

// Den returns the canonical denominator: positive for finite values, zero
// for Inf and NaN.
func (f Fraction[T]) Den() T { return f.den }

// normalize rewrites f into canonical form: the denominator's sign moves
// to the numerator, then both components shrink by their gcd. A zero
// denominator is left untouched so the Inf/NaN encodings survive, and a
// zero numerator over a nonzero denominator collapses to 0/1.
func (f *Fraction[T]) normalize() {
	if f.den < 0 {
		f.num = -f.num
		f.den = -f.den
	}
	if f.den == 0 {
		return
	}
	g := gcd(f.num, f.den)
	f.num /= g
	f.den /= g
}

// gcd returns the magnitude of the greatest common divisor of a and b via
// the Euclidean remainder loop. gcd(0, b) is |b|, which is what collapses
// reduced zeros to 0/1.
func gcd[T constraints.Signed](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// IsFinite reports whether f is an ordinary rational, i.e. Den() != 0.
func (f Fraction[T]) IsFinite() bool { return f.den != 0 }

// IsInf reports whether f is a signed infinity.
func (f Fraction[T]) IsInf() bool { return f.den == 0 && f.num != 0 }

// IsNaN reports whether f is not-a-number.
func (f Fraction[T]) IsNaN() bool { return f.den == 0 && f.num == 0 }

// Sign returns -1, 0, or +1 by the sign of the numerator. An infinity's
// sign is its numerator's sign; NaN and zero have sign 0.
func (f Fraction[T]) Sign() int {
	switch {
	case f.num > 0:
		return 1
	case f.num < 0:
		return -1
	}
	return 0
}

// Neg returns f with its sign flipped. Negating an infinity flips its
// sign; negating NaN yields NaN.
func (f Fraction[T]) Neg() Fraction[T] {
	f.num = -f.num
	return f
}

// Float64 returns the nearest float64 approximation of f. Infinities map
// to ±math.Inf and NaN to math.NaN.
func (f Fraction[T]) Float64() float64 {
	if f.den == 0 {
		switch {
		case f.num > 0:
			return math.Inf(1)
		case f.num < 0:
			return math.Inf(-1)
		}
		return math.NaN()
	}
	return float64(f.num) / float64(f.den)
}

// The four operators share one shape: an unexported step combines g into
// the value receiver's copy of the left operand and re-canonicalizes, and
// the exported method returns that copy. Operands are therefore never
// modified, and every result satisfies the canonical-form invariants.

func (f *Fraction[T]) add(g Fraction[T]) {
	f.num, f.den = f.num*g.den+g.num*f.den, f.den*g.den
	f.normalize()
}

func (f *Fraction[T]) sub(g Fraction[T]) {
	f.num, f.den = f.num*g.den-g.num*f.den, f.den*g.den
	f.normalize()
}

func (f *Fraction[T]) mul(g Fraction[T]) {
	f.num, f.den = f.num*g.num, f.den*g.den
	f.normalize()
}

func (f *Fraction[T]) div(g Fraction[T]) {
	f.num, f.den = f.num*g.den, f.den*g.num
	f.normalize()
}

// Add returns the canonical sum f + g.
func (f Fraction[T]) Add(g Fraction[T]) Fraction[T] {
	f.add(g)
	return f
}

// Sub returns the canonical difference f - g.
func (f Fraction[T]) Sub(g Fraction[T]) Fraction[T] {
	f.sub(g)
	return f
}

// Mul returns the canonical product f * g.
func (f Fraction[T]) Mul(g Fraction[T]) Fraction[T] {
	f.mul(g)
	return f
}

// Div returns the canonical quotient f / g, computed as multiplication by
// the reciprocal of g. Dividing by a zero-valued fraction is not an error:
// the result's denominator becomes 0 and it classifies as Inf when f was
// nonzero or NaN when both operands were zero.
func (f Fraction[T]) Div(g Fraction[T]) Fraction[T] {
	f.div(g)
	return f
}

// Equal reports whether f and g are the same canonical pair. Because every
// value is canonical, this coincides with mathematical equality for finite
// fractions. The rule is structural for non-finite values too: NaN equals
// NaN, while infinities keep their unreduced numerators, so New(1, 0) and
// New(2, 0) are distinct.
func (f Fraction[T]) Equal(g Fraction[T]) bool {
	return f.num == g.num && f.den == g.den
}

// Greater reports whether f > g by cross-multiplication:
// f.num*g.den > g.num*f.den, valid for finite operands since canonical
// denominators are non-negative. Non-finite operands run through the same
// products: a signed infinity orders against every finite value by its
// sign, while two non-finite operands never compare greater because both
// products are zero.
func (f Fraction[T]) Greater(g Fraction[T]) bool {
	return f.num*g.den > g.num*f.den
}

// Less reports whether f < g. It is g.Greater(f); the derived comparisons
// add no ordering logic of their own.
func (f Fraction[T]) Less(g Fraction[T]) bool { return g.Greater(f) }

// GreaterEqual reports whether f >= g, defined as !g.Greater(f).
func (f Fraction[T]) GreaterEqual(g Fraction[T]) bool { return !g.Greater(f) }

// LessEqual reports whether f <= g, defined as !f.Greater(g).
func (f Fraction[T]) LessEqual(g Fraction[T]) bool { return !f.Greater(g) }

// String renders the canonical text form: "NaN", "Inf" (the sign is not
// rendered), or "<num>/<den>" with the denominator always printed, so
// whole numbers read like "27/1". It implements fmt.Stringer.
func (f Fraction[T]) String() string {
	if f.den == 0 {
		if f.num == 0 {
			return "NaN"
		}
		return "Inf"
	}
	return fmt.Sprintf("%d/%d", f.num, f.den)
}
