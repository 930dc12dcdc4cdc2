// Package expr evaluates arithmetic expressions over exact fractions.
//
// An expression combines integer literals with the four binary operators,
// unary minus and parentheses. Because "/" is ordinary fraction division,
// "3/4" denotes the fraction 3/4 and "100/150 + 2/5" reduces to 16/15.
// Evaluation happens at a caller-selected component width; every
// intermediate value is a canonical fraction, so dividing by a zero
// subexpression yields Inf or NaN instead of an error.
package expr
