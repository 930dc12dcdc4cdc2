// Command generate-golden produces the golden corpus used by the
// expression evaluator tests. It generates random expressions from
// small integer literals, evaluates them with an independent
// math/big.Rat oracle and writes "EXPR = NUM/DEN" lines. Keeping the
// oracle free of the calculator's own fraction type means the two
// implementations check each other.
//
// Usage:
//
//	go run ./cmd/generate-golden [-count N] [-seed S] [-out PATH]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"path/filepath"
)

func main() {
	count := flag.Int("count", 64, "number of expressions to generate")
	seed := flag.Int64("seed", 1, "pseudo-random seed for a reproducible corpus")
	out := flag.String("out", filepath.Join("internal", "expr", "testdata", "golden.txt"),
		"output path for the corpus")
	flag.Parse()

	if err := run(*count, *seed, *out); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
}

// run writes a corpus of count verified expressions to path.
func run(count int, seed int64, path string) error {
	rng := rand.New(rand.NewSource(seed))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Golden corpus for the expression evaluator.")
	fmt.Fprintln(w, "# Generated by cmd/generate-golden; results come from an")
	fmt.Fprintln(w, "# independent math/big.Rat oracle. Lines read EXPR = NUM/DEN.")

	written := 0
	for written < count {
		src := randomExpr(rng, 0)
		result, err := ratEval(src)
		if err != nil {
			// Division by a zero-valued subexpression; try another.
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", src, canonical(result))
		written++
	}
	return w.Flush()
}

var operators = []string{"+", "-", "*", "/"}

// randomExpr builds an expression up to two operator levels deep from
// small literals, so every intermediate value stays far inside int64
// components at any width the tests replay it with.
func randomExpr(rng *rand.Rand, depth int) string {
	if depth >= 2 || rng.Intn(3) == 0 {
		return randomTerm(rng)
	}

	left := randomExpr(rng, depth+1)
	right := randomExpr(rng, depth+1)
	op := operators[rng.Intn(len(operators))]

	s := fmt.Sprintf("%s %s %s", left, op, right)
	if rng.Intn(4) == 0 {
		s = "(" + s + ")"
	}
	return s
}

// randomTerm emits an integer or a fraction literal, occasionally
// negated. Denominator literals are never zero; zero divisors still
// arise from subexpressions and are filtered by the oracle.
func randomTerm(rng *rand.Rand) string {
	num := rng.Intn(21)
	if rng.Intn(4) == 0 {
		return fmt.Sprintf("%d", num)
	}

	den := rng.Intn(20) + 1
	s := fmt.Sprintf("%d/%d", num, den)
	if rng.Intn(5) == 0 {
		s = "-" + s
	}
	return s
}

// canonical renders r the way the calculator prints finite fractions:
// reduced components with a positive denominator, always as NUM/DEN.
func canonical(r *big.Rat) string {
	return fmt.Sprintf("%s/%s", r.Num().String(), r.Denom().String())
}

// ratParser is a minimal recursive-descent evaluator over big.Rat. It
// accepts the calculator's grammar: "*" and "/" bind tighter than "+"
// and "-", both levels associate left, unary minus applies to a factor
// and literals are unsigned decimal integers.
type ratParser struct {
	src string
	pos int
}

// ratEval evaluates src over arbitrary-precision rationals. Dividing by
// a zero-valued expression is an error; the oracle has no Inf or NaN.
func ratEval(src string) (*big.Rat, error) {
	p := &ratParser{src: src}
	v, err := p.sum()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("trailing input at offset %d", p.pos)
	}
	return v, nil
}

func (p *ratParser) sum() (*big.Rat, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.product()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Add(left, right)
		case '-':
			p.pos++
			right, err := p.product()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Sub(left, right)
		default:
			return left, nil
		}
	}
}

func (p *ratParser) product() (*big.Rat, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.factor()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Mul(left, right)
		case '/':
			p.pos++
			right, err := p.factor()
			if err != nil {
				return nil, err
			}
			if right.Sign() == 0 {
				return nil, fmt.Errorf("division by zero at offset %d", p.pos)
			}
			left = new(big.Rat).Quo(left, right)
		default:
			return left, nil
		}
	}
}

func (p *ratParser) factor() (*big.Rat, error) {
	switch c := p.peek(); {
	case c == '-':
		p.pos++
		v, err := p.factor()
		if err != nil {
			return nil, err
		}
		return new(big.Rat).Neg(v), nil

	case c == '(':
		p.pos++
		v, err := p.sum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("missing closing parenthesis at offset %d", p.pos)
		}
		p.pos++
		return v, nil

	case c >= '0' && c <= '9':
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		n, ok := new(big.Int).SetString(p.src[start:p.pos], 10)
		if !ok {
			return nil, fmt.Errorf("bad literal at offset %d", start)
		}
		return new(big.Rat).SetInt(n), nil

	default:
		return nil, fmt.Errorf("unexpected input at offset %d", p.pos)
	}
}

// peek returns the next significant byte without consuming it, or 0 at
// the end of input.
func (p *ratParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *ratParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}
