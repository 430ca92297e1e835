// Package adder builds boolean networks that count how many of a list of
// expressions hold, and compares the resulting binary numbers.
package adder

import "github.com/latticefold/latticefold/pkg/boolexpr"

// Sum is a binary number whose bits are expressions, least significant bit
// first.
type Sum []*boolexpr.Expr

// Count returns a network of half adders whose output is the number of
// terms that hold. The result has one bit per term; an empty list counts
// to the empty sum, which is zero.
//
// Each pass ripples pairwise sums from the most significant position down,
// after which the first position holds the parity of the remaining terms
// and every other position a carry of twice the weight. The first position
// is emitted and the pass is repeated on the carries.
func Count(terms []*boolexpr.Expr) Sum {
	bits := append([]*boolexpr.Expr(nil), terms...)
	out := make(Sum, 0, len(bits))
	for len(bits) > 1 {
		for p := len(bits) - 1; p > 0; p-- {
			x, y := bits[p], bits[p-1]
			bits[p] = boolexpr.And(x, y)
			bits[p-1] = boolexpr.Xor(x, y)
		}
		out = append(out, bits[0])
		bits = bits[1:]
	}
	return append(out, bits...)
}

// Offset returns the count of terms plus k, seeding the network with k
// terms that always hold.
func Offset(k int, terms []*boolexpr.Expr) Sum {
	seeded := make([]*boolexpr.Expr, 0, k+len(terms))
	for i := 0; i < k; i++ {
		seeded = append(seeded, boolexpr.True())
	}
	return Count(append(seeded, terms...))
}

// PlusOne returns the count of terms plus one.
func PlusOne(terms []*boolexpr.Expr) Sum { return Offset(1, terms) }

// PlusTwo returns the count of terms plus two.
func PlusTwo(terms []*boolexpr.Expr) Sum { return Offset(2, terms) }

// Bit returns bit i of s, false beyond its width.
func (s Sum) Bit(i int) *boolexpr.Expr {
	if i < len(s) {
		return s[i]
	}
	return boolexpr.False()
}

// Equal returns an expression holding when a and b denote the same
// number. Every bit position of the wider operand is compared, the
// narrower one reading as false beyond its width.
func Equal(a, b Sum) *boolexpr.Expr {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	bits := make([]*boolexpr.Expr, n)
	for i := range bits {
		bits[i] = boolexpr.Xnor(a.Bit(i), b.Bit(i))
	}
	return boolexpr.Ands(bits...)
}

// Value evaluates s to an integer under values.
func (s Sum) Value(values func(boolexpr.Var) bool) int {
	n := 0
	for i, bit := range s {
		if bit.Eval(values) {
			n |= 1 << uint(i)
		}
	}
	return n
}
