package lattice

import (
	"fmt"
	"strings"

	"github.com/latticefold/latticefold/pkg/boolexpr"
)

// InvalidMoveError reports a step whose bits encode no move.
type InvalidMoveError struct {
	Step int
	Code string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("step %d: bit pattern %s encodes no move", e.Step, e.Code)
}

// Code returns the bit pattern of step t under values.
func (s *Scheme) Code(t int, values func(boolexpr.Var) bool) string {
	var sb strings.Builder
	for bit := 0; bit < s.BitsPerStep; bit++ {
		if values(s.Var(t, bit)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Walk decodes the moves of a chain of n residues under values, which must
// cover every step variable including the pinned ones.
func (s *Scheme) Walk(n int, values func(boolexpr.Var) bool) ([]Move, error) {
	moves := make([]Move, Steps(n))
	for t := range moves {
		code := s.Code(t, values)
		m, ok := s.Move(code)
		if !ok {
			return nil, &InvalidMoveError{Step: t, Code: code}
		}
		moves[t] = m
	}
	return moves, nil
}

// Decode returns the lattice positions of the n residues, starting from
// the origin.
func (s *Scheme) Decode(n int, values func(boolexpr.Var) bool) ([]Vector, error) {
	moves, err := s.Walk(n, values)
	if err != nil {
		return nil, err
	}
	return Positions(moves), nil
}

// Positions accumulates moves into residue positions starting at the
// origin.
func Positions(moves []Move) []Vector {
	out := make([]Vector, len(moves)+1)
	for i, m := range moves {
		out[i+1] = out[i].Add(m.Delta)
	}
	return out
}

// Expand interleaves the pinned bits of a chain of n residues with free, a
// sample of the variables returned by FreeVars in the same order.
func (s *Scheme) Expand(n int, free []bool) (boolexpr.Assignment, error) {
	vars := s.FreeVars(n)
	if len(free) < len(vars) {
		return nil, fmt.Errorf("expected %d free bits, got %d", len(vars), len(free))
	}
	out := s.Fixed(n)
	for i, v := range vars {
		out[v] = free[i]
	}
	return out, nil
}

// SelfAvoiding reports whether no two residues share a site.
func SelfAvoiding(positions []Vector) bool {
	seen := make(map[Vector]bool, len(positions))
	for _, p := range positions {
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

// Contacts lists the residue pairs i < j, not chain neighbours, occupying
// adjacent sites.
func (s *Scheme) Contacts(positions []Vector) [][2]int {
	var out [][2]int
	for i := range positions {
		for j := i + 2; j < len(positions); j++ {
			if s.Adjacent(positions[i], positions[j]) {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}
