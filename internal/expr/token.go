package expr

import (
	"fmt"
	"unicode/utf8"
)

// kind enumerates the token categories produced by the scanner.
type kind int

const (
	kindNumber kind = iota
	kindPlus
	kindMinus
	kindStar
	kindSlash
	kindLParen
	kindRParen
	kindEOF
)

// token is one lexical element together with its byte offset in the
// source, kept for error reporting.
type token struct {
	kind   kind
	text   string
	offset int
}

// SyntaxError describes a malformed expression. Offset is the byte
// offset of the offending input; Message is the complete rendered text.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string { return e.Message }

// scan converts src into a token stream terminated by an EOF token. It
// validates characters only; grammar errors surface during parsing.
func scan(src string) ([]token, error) {
	toks := make([]token, 0, 16)
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			toks = append(toks, token{kindNumber, src[start:i], start})
		case c == '+':
			toks = append(toks, token{kindPlus, "+", i})
			i++
		case c == '-':
			toks = append(toks, token{kindMinus, "-", i})
			i++
		case c == '*':
			toks = append(toks, token{kindStar, "*", i})
			i++
		case c == '/':
			toks = append(toks, token{kindSlash, "/", i})
			i++
		case c == '(':
			toks = append(toks, token{kindLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{kindRParen, ")", i})
			i++
		default:
			r, _ := utf8.DecodeRuneInString(src[i:])
			return nil, &SyntaxError{
				Offset:  i,
				Message: fmt.Sprintf("unexpected character %q at offset %d", r, i),
			}
		}
	}
	return append(toks, token{kindEOF, "", len(src)}), nil
}
