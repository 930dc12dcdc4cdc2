// Package fraction implements an exact rational number value type generic
// over the signed fixed-width integer types. Values are always held in
// canonical reduced form, zero denominators are absorbed into Inf/NaN
// classifications instead of errors, and all arithmetic returns canonical
// results without ever touching its operands.
package fraction
