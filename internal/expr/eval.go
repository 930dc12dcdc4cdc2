package expr

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/agbru/fraccalc/internal/fraction"
)

// EvalAs parses and evaluates src as a fraction expression over T.
//
// The grammar is the usual arithmetic one: "*" and "/" bind tighter than
// "+" and "-", both levels associate to the left, and unary minus applies
// to a factor. Literals are unsigned decimal integers that must fit in T;
// negative values are written with the unary operator.
//
// All errors are *SyntaxError values describing the first offending
// token. Dividing by a zero-valued subexpression is not among them: that
// result flows through the fraction package's Inf/NaN policy.
func EvalAs[T constraints.Signed](src string) (fraction.Fraction[T], error) {
	toks, err := scan(src)
	if err != nil {
		return fraction.Fraction[T]{}, err
	}
	p := &parser[T]{toks: toks}
	result, err := p.sum()
	if err != nil {
		return fraction.Fraction[T]{}, err
	}
	if trailing := p.peek(); trailing.kind != kindEOF {
		return fraction.Fraction[T]{}, unexpected(trailing)
	}
	return result, nil
}

// parser is a recursive-descent evaluator. It computes values as it
// goes instead of materializing a syntax tree; a calculator has no
// second consumer for one.
type parser[T constraints.Signed] struct {
	toks []token
	pos  int
}

func (p *parser[T]) peek() token { return p.toks[p.pos] }

func (p *parser[T]) next() token {
	t := p.toks[p.pos]
	if t.kind != kindEOF {
		p.pos++
	}
	return t
}

// sum := product (("+" | "-") product)*
func (p *parser[T]) sum() (fraction.Fraction[T], error) {
	left, err := p.product()
	if err != nil {
		return fraction.Fraction[T]{}, err
	}
	for {
		switch p.peek().kind {
		case kindPlus:
			p.next()
			right, err := p.product()
			if err != nil {
				return fraction.Fraction[T]{}, err
			}
			left = left.Add(right)
		case kindMinus:
			p.next()
			right, err := p.product()
			if err != nil {
				return fraction.Fraction[T]{}, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

// product := factor (("*" | "/") factor)*
func (p *parser[T]) product() (fraction.Fraction[T], error) {
	left, err := p.factor()
	if err != nil {
		return fraction.Fraction[T]{}, err
	}
	for {
		switch p.peek().kind {
		case kindStar:
			p.next()
			right, err := p.factor()
			if err != nil {
				return fraction.Fraction[T]{}, err
			}
			left = left.Mul(right)
		case kindSlash:
			p.next()
			right, err := p.factor()
			if err != nil {
				return fraction.Fraction[T]{}, err
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

// factor := number | "-" factor | "(" sum ")"
func (p *parser[T]) factor() (fraction.Fraction[T], error) {
	switch tok := p.next(); tok.kind {
	case kindNumber:
		n, err := literal[T](tok)
		if err != nil {
			return fraction.Fraction[T]{}, err
		}
		return fraction.FromInt(n), nil
	case kindMinus:
		f, err := p.factor()
		if err != nil {
			return fraction.Fraction[T]{}, err
		}
		return f.Neg(), nil
	case kindLParen:
		f, err := p.sum()
		if err != nil {
			return fraction.Fraction[T]{}, err
		}
		if closing := p.next(); closing.kind != kindRParen {
			return fraction.Fraction[T]{}, unexpected(closing)
		}
		return f, nil
	default:
		return fraction.Fraction[T]{}, unexpected(tok)
	}
}

// literal converts a number token, rejecting values T cannot represent.
func literal[T constraints.Signed](tok token) (T, error) {
	v, err := strconv.ParseInt(tok.text, 10, 64)
	if err != nil {
		return 0, &SyntaxError{
			Offset:  tok.offset,
			Message: fmt.Sprintf("integer %s out of range at offset %d", tok.text, tok.offset),
		}
	}
	if int64(T(v)) != v {
		return 0, &SyntaxError{
			Offset:  tok.offset,
			Message: fmt.Sprintf("integer %s does not fit width %d at offset %d", tok.text, bitWidth[T](), tok.offset),
		}
	}
	return T(v), nil
}

// bitWidth reports the size of T in bits by shifting 1 until the sign
// bit flips.
func bitWidth[T constraints.Signed]() int {
	bits := 1
	for v := T(1); v > 0; v <<= 1 {
		bits++
	}
	return bits
}

func unexpected(t token) *SyntaxError {
	if t.kind == kindEOF {
		return &SyntaxError{Offset: t.offset, Message: "unexpected end of expression"}
	}
	return &SyntaxError{
		Offset:  t.offset,
		Message: fmt.Sprintf("unexpected %q at offset %d", t.text, t.offset),
	}
}
