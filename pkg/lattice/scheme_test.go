package lattice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefold/latticefold/pkg/boolexpr"
)

func constBits(code string) Bits {
	bits := make(Bits, len(code))
	for i := range code {
		bits[i] = boolexpr.Const(code[i] == '1')
	}
	return bits
}

func allCodes(k int) []string {
	var out []string
	for x := 0; x < 1<<k; x++ {
		out = append(out, fmt.Sprintf("%0*b", k, x))
	}
	return out
}

func never(boolexpr.Var) bool { return false }

func TestForArity(t *testing.T) {
	assert.Equal(t, []Arity{Square, Cubic, Triangular, FCC}, Arities())

	_, err := ForArity(5)
	var unsupported UnsupportedArityError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, UnsupportedArityError(5), unsupported)
	assert.Contains(t, err.Error(), "5")
}

func TestSchemeEncoding(t *testing.T) {
	type tc struct {
		Arity Arity
		Bits  int
		Pins  int
	}

	for _, tt := range []tc{
		{Arity: Square, Bits: 2, Pins: 2},
		{Arity: Cubic, Bits: 3, Pins: 5},
		{Arity: Triangular, Bits: 3, Pins: 2},
		{Arity: FCC, Bits: 4, Pins: 6},
	} {
		t.Run(fmt.Sprint(tt.Arity), func(t *testing.T) {
			s, err := ForArity(tt.Arity)
			require.NoError(t, err)
			assert.Equal(t, tt.Bits, s.BitsPerStep)
			assert.Len(t, s.Pins, tt.Pins)
			assert.Len(t, s.Moves, int(tt.Arity))

			t.Run("every code is a move or invalid", func(t *testing.T) {
				for _, code := range allCodes(s.BitsPerStep) {
					_, isMove := s.Move(code)
					invalid := false
					for _, p := range s.Invalid {
						invalid = invalid || Matches(p, code)
					}
					assert.True(t, isMove != invalid, "code %s", code)
				}
			})

			t.Run("directions sum to move deltas", func(t *testing.T) {
				for _, m := range s.Moves {
					bits := constBits(m.Code)
					for i, axis := range s.Axes {
						got := 0
						for _, d := range axis.Plus {
							if d.Holds(bits).Eval(never) {
								got++
							}
						}
						for _, d := range axis.Minus {
							if d.Holds(bits).Eval(never) {
								got--
							}
						}
						assert.Equal(t, m.Delta[i], got, "move %s axis %s", m.Name, axis.Name)
					}
				}
			})

			t.Run("neighbours are the move deltas", func(t *testing.T) {
				var deltas []Vector
				for _, m := range s.Moves {
					deltas = append(deltas, m.Delta)
					r, ok := s.Reverse(m)
					require.True(t, ok, "move %s", m.Name)
					assert.Equal(t, m.Delta.Neg(), r.Delta)
				}
				assert.ElementsMatch(t, deltas, s.Neighbours())
			})

			t.Run("pinned first step is a move", func(t *testing.T) {
				fixed := s.Fixed(3)
				pinned := 0
				for _, code := range allCodes(s.BitsPerStep) {
					ok := true
					for bit := 0; bit < s.BitsPerStep; bit++ {
						if v, set := fixed[s.Var(0, bit)]; set && v != (code[bit] == '1') {
							ok = false
						}
					}
					if _, isMove := s.Move(code); ok && isMove {
						pinned++
					}
				}
				assert.Positive(t, pinned)
				assert.Len(t, s.FreeVars(3), 2*s.BitsPerStep-tt.Pins)
			})
		})
	}
}

func TestPairs(t *testing.T) {
	square, err := ForArity(Square)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 3}, {1, 4}}, square.ContactPairs(5))
	assert.Equal(t, [][2]int{{0, 2}, {0, 4}, {1, 3}, {2, 4}}, square.OverlapPairs(5))
	assert.Empty(t, square.ContactPairs(3))

	fcc, err := ForArity(FCC)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 2}, {0, 3}, {1, 3}}, fcc.ContactPairs(4))
	assert.Equal(t, [][2]int{{0, 2}, {0, 3}, {1, 3}}, fcc.OverlapPairs(4))
}

func TestVarName(t *testing.T) {
	s, err := ForArity(Cubic)
	require.NoError(t, err)
	assert.Equal(t, "q_0a", s.VarName(0))
	assert.Equal(t, "q_1c", s.VarName(5))
	assert.Equal(t, boolexpr.Var(7), s.Var(2, 1))
}
