package assemble

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/lattice"
)

func allVars(n int) []boolexpr.Var {
	out := make([]boolexpr.Var, n)
	for i := range out {
		out[i] = boolexpr.Var(i)
	}
	return out
}

// TestConstraintsAgainstDecode checks every constraint against the
// geometry of the decoded walk, for every assignment of every step bit.
func TestConstraintsAgainstDecode(t *testing.T) {
	type tc struct {
		Arity  lattice.Arity
		Length int
	}

	for _, tt := range []tc{
		{Arity: lattice.Square, Length: 6},
		{Arity: lattice.Cubic, Length: 4},
		{Arity: lattice.Triangular, Length: 4},
		{Arity: lattice.FCC, Length: 4},
	} {
		t.Run(fmt.Sprintf("%d/%d", tt.Arity, tt.Length), func(t *testing.T) {
			s, err := lattice.ForArity(tt.Arity)
			require.NoError(t, err)
			c := NewContext(s, tt.Length)
			vars := allVars(c.Vars())

			redundancy, backtrack, overlap := c.Redundancy(), c.Backtrack(), c.Overlap()
			valid := c.Valid()
			type pair struct {
				i, j     int
				coincide *boolexpr.Expr
				adjacent *boolexpr.Expr
			}
			var pairs []pair
			for i := 0; i < tt.Length; i++ {
				for j := i + 1; j < tt.Length; j++ {
					pairs = append(pairs, pair{i: i, j: j, coincide: c.Coincide(i, j), adjacent: c.Adjacent(i, j)})
				}
			}

			for x := uint64(0); x < 1<<uint(len(vars)); x++ {
				values := boolexpr.Bits(vars, x).Value

				codesValid := true
				for step := 0; step < c.Steps(); step++ {
					_, ok := s.Move(s.Code(step, values))
					codesValid = codesValid && ok
				}
				assert.Equal(t, !codesValid, redundancy.Expr().Eval(values), "assignment %b", x)
				if !codesValid {
					assert.False(t, valid.Eval(values))
					continue
				}

				moves, err := s.Walk(tt.Length, values)
				require.NoError(t, err)
				positions := lattice.Positions(moves)

				reversal := false
				for step := 0; step+1 < len(moves); step++ {
					reversal = reversal || moves[step].Delta == moves[step+1].Delta.Neg()
				}
				assert.Equal(t, reversal, backtrack.Expr().Eval(values), "assignment %b", x)

				for _, p := range pairs {
					same := positions[p.i] == positions[p.j]
					assert.Equal(t, same, p.coincide.Eval(values), "coincide(%d,%d) assignment %b", p.i, p.j, x)
					assert.Equal(t, s.Adjacent(positions[p.i], positions[p.j]), p.adjacent.Eval(values), "adjacent(%d,%d) assignment %b", p.i, p.j, x)
				}

				avoiding := lattice.SelfAvoiding(positions)
				assert.Equal(t, !avoiding, overlap.Expr().Eval(values), "assignment %b", x)
				assert.Equal(t, avoiding, valid.Eval(values), "assignment %b", x)
			}
		})
	}
}

func TestConformations(t *testing.T) {
	type tc struct {
		Arity  lattice.Arity
		Length int
		Want   int64
	}

	for _, tt := range []tc{
		{Arity: lattice.Square, Length: 1, Want: 1},
		{Arity: lattice.Square, Length: 2, Want: 1},
		{Arity: lattice.Square, Length: 4, Want: 9},
		{Arity: lattice.Square, Length: 5, Want: 25},
		{Arity: lattice.Square, Length: 6, Want: 71},
		{Arity: lattice.Cubic, Length: 4, Want: 10},
	} {
		t.Run(fmt.Sprintf("%d/%d", tt.Arity, tt.Length), func(t *testing.T) {
			s, err := lattice.ForArity(tt.Arity)
			require.NoError(t, err)
			got, err := NewContext(s, tt.Length).Conformations(0)
			require.NoError(t, err)
			assert.Equal(t, tt.Want, got.Int64())
		})
	}
}

// TestConformationsAgainstDecode counts the pinned self-avoiding walks by
// enumeration on the lattices where no closed form is handy.
func TestConformationsAgainstDecode(t *testing.T) {
	for _, arity := range []lattice.Arity{lattice.Triangular, lattice.FCC} {
		t.Run(fmt.Sprint(arity), func(t *testing.T) {
			s, err := lattice.ForArity(arity)
			require.NoError(t, err)
			const length = 4
			free := s.FreeVars(length)

			want := 0
			for x := uint64(0); x < 1<<uint(len(free)); x++ {
				sample := make([]bool, len(free))
				for i := range sample {
					sample[i] = x&(1<<uint(i)) != 0
				}
				values, err := s.Expand(length, sample)
				require.NoError(t, err)
				positions, err := s.Decode(length, values.Value)
				if err == nil && lattice.SelfAvoiding(positions) {
					want++
				}
			}

			got, err := NewContext(s, length).Conformations(0)
			require.NoError(t, err)
			assert.EqualValues(t, want, got.Int64())
			assert.Positive(t, want)
		})
	}
}

func TestFamilyLabels(t *testing.T) {
	s, err := lattice.ForArity(lattice.Cubic)
	require.NoError(t, err)
	c := NewContext(s, 4)

	var labels []string
	for _, f := range c.Families() {
		for _, term := range f.Terms {
			labels = append(labels, term.Label)
		}
	}
	assert.Equal(t, []string{
		"redundancy(0)", "redundancy(1)", "redundancy(2)",
		"backtrack(0)", "backtrack(1)",
		"overlap(0,2)", "overlap(1,3)",
	}, labels)
}

func TestAxisSumIsShared(t *testing.T) {
	s, err := lattice.ForArity(lattice.Square)
	require.NoError(t, err)
	c := NewContext(s, 6)
	a := c.AxisSum(0, false, 1, 4, 0)
	b := c.AxisSum(0, false, 1, 4, 0)
	require.Len(t, a, len(b))
	for i := range a {
		assert.Same(t, a[i], b[i])
	}
}
