package adder

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticefold/latticefold/pkg/boolexpr"
)

func vars(lo, hi int) ([]boolexpr.Var, []*boolexpr.Expr) {
	var vs []boolexpr.Var
	var es []*boolexpr.Expr
	for v := lo; v < hi; v++ {
		vs = append(vs, boolexpr.Var(v))
		es = append(es, boolexpr.Variable(boolexpr.Var(v)))
	}
	return vs, es
}

func TestCount(t *testing.T) {
	for m := 0; m <= 8; m++ {
		t.Run(fmt.Sprintf("%d terms", m), func(t *testing.T) {
			vs, terms := vars(0, m)
			count, one, two := Count(terms), PlusOne(terms), PlusTwo(terms)
			assert.Len(t, count, m)
			for x := uint64(0); x < 1<<uint(m); x++ {
				values := boolexpr.Bits(vs, x).Value
				want := bits.OnesCount64(x)
				assert.Equal(t, want, count.Value(values), "assignment %b", x)
				assert.Equal(t, want+1, one.Value(values), "assignment %b", x)
				assert.Equal(t, want+2, two.Value(values), "assignment %b", x)
			}
		})
	}
}

func TestCountDoesNotMutateTerms(t *testing.T) {
	_, terms := vars(0, 3)
	orig := append([]*boolexpr.Expr(nil), terms...)
	Count(terms)
	assert.Equal(t, orig, terms)
}

func TestEqual(t *testing.T) {
	for _, sizes := range [][2]int{{0, 0}, {0, 2}, {1, 3}, {3, 3}, {4, 2}} {
		t.Run(fmt.Sprintf("%d vs %d", sizes[0], sizes[1]), func(t *testing.T) {
			vs, left := vars(0, sizes[0]+sizes[1])
			right := left[sizes[0]:]
			left = left[:sizes[0]]
			eq := Equal(Count(left), Count(right))
			eqOffset := Equal(PlusOne(left), Count(right))
			for x := uint64(0); x < 1<<uint(len(vs)); x++ {
				l := bits.OnesCount64(x & (1<<uint(sizes[0]) - 1))
				r := bits.OnesCount64(x >> uint(sizes[0]))
				values := boolexpr.Bits(vs, x).Value
				assert.Equal(t, l == r, eq.Eval(values), "assignment %b", x)
				assert.Equal(t, l+1 == r, eqOffset.Eval(values), "assignment %b", x)
			}
		})
	}
}

func TestBitPadding(t *testing.T) {
	s := Sum{boolexpr.True()}
	assert.True(t, s.Bit(0).IsConst(true))
	assert.True(t, s.Bit(5).IsConst(false))

	none := func(boolexpr.Var) bool { return false }
	assert.Empty(t, Count(nil))
	assert.Equal(t, 0, Count(nil).Value(none))
	assert.Equal(t, 2, PlusTwo(nil).Value(none))
}
