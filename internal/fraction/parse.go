package fraction

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Parse converts the textual form produced by String back into a canonical
// Fraction. It accepts "<num>", "<num>/<den>" (each part an optionally
// signed decimal integer that must fit in T), and the special spellings
// "NaN", "Inf", "+Inf" and "-Inf". Whitespace around the text and around
// either side of the slash is ignored.
//
// Parse is the inverse of String for every canonical value, with one
// caveat: the text form does not record an infinity's sign, so a negative
// infinity round-trips as positive.
func Parse[T constraints.Signed](s string) (Fraction[T], error) {
	switch trimmed := strings.TrimSpace(s); trimmed {
	case "NaN":
		return New[T](0, 0), nil
	case "Inf", "+Inf":
		return New[T](1, 0), nil
	case "-Inf":
		return New[T](-1, 0), nil
	default:
		numText, denText, hasDen := strings.Cut(trimmed, "/")
		num, err := parseComponent[T](numText)
		if err != nil {
			return Fraction[T]{}, fmt.Errorf("invalid fraction %q: %w", s, err)
		}
		if !hasDen {
			return FromInt(num), nil
		}
		den, err := parseComponent[T](denText)
		if err != nil {
			return Fraction[T]{}, fmt.Errorf("invalid fraction %q: %w", s, err)
		}
		return New(num, den), nil
	}
}

// parseComponent parses one side of the "/" as a decimal integer and
// verifies it is representable in T.
func parseComponent[T constraints.Signed](s string) (T, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if int64(T(v)) != v {
		return 0, fmt.Errorf("value %d out of range", v)
	}
	return T(v), nil
}

// MarshalText implements encoding.TextMarshaler using the canonical
// String form.
func (f Fraction[T]) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting anything
// Parse accepts.
func (f *Fraction[T]) UnmarshalText(text []byte) error {
	parsed, err := Parse[T](string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
