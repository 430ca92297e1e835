package qubo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefold/latticefold/pkg/lattice"
	"github.com/latticefold/latticefold/pkg/sat"
)

func TestProblem(t *testing.T) {
	type tc struct {
		Name      string
		Arity     lattice.Arity
		Sequence  string
		Satisfied int
	}

	for _, tt := range []tc{
		{Name: "square hairpin", Arity: lattice.Square, Sequence: "GAAA", Satisfied: 1},
		{Name: "square u-turn", Arity: lattice.Square, Sequence: "AKKKKA", Satisfied: 1},
		{Name: "square all hydrophobic", Arity: lattice.Square, Sequence: "AAAAAA", Satisfied: 2},
		{Name: "polar chain", Arity: lattice.Square, Sequence: "KKKKK", Satisfied: 0},
		{Name: "cubic", Arity: lattice.Cubic, Sequence: "AAAA", Satisfied: 1},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			r := compile(t, tt.Sequence, WithLattice(tt.Arity))
			p := r.Problem()

			s, err := sat.New(sat.WithInput(p))
			require.NoError(t, err)
			solution, err := s.Solve(context.Background())
			require.NoError(t, err)
			assert.True(t, solution.Optimal)
			assert.Equal(t, tt.Satisfied, solution.Satisfied)

			in, err := r.Interpret(solution.Assignment)
			require.NoError(t, err)
			assert.True(t, in.Valid(), "violations %v", in.Violations)
			assert.Len(t, in.Contacts, tt.Satisfied)
			assert.InDelta(t, -float64(tt.Satisfied), in.Energy, 1e-9)
		})
	}
}
