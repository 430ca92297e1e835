package poly

import (
	"fmt"

	"github.com/latticefold/latticefold/pkg/boolexpr"
)

// Pair is an unordered pair of distinct variables with U < V.
type Pair struct {
	U, V boolexpr.Var
}

// Model is a quadratic objective split into its constant, linear and
// pairwise parts. Over binary variables it reads
//
//	Offset + sum Linear[v] x_v + sum Quadratic[u,v] x_u x_v
//
// and over spins the same field names hold the Ising h, J and offset.
type Model struct {
	Offset    float64
	Linear    map[boolexpr.Var]float64
	Quadratic map[Pair]float64
}

// Energy computes the value of a binary model under values.
func (m Model) Energy(values func(boolexpr.Var) bool) float64 {
	e := m.Offset
	for v, c := range m.Linear {
		if values(v) {
			e += c
		}
	}
	for p, c := range m.Quadratic {
		if values(p.U) && values(p.V) {
			e += c
		}
	}
	return e
}

// SpinEnergy computes the value of a spin model, a true variable reading
// as spin +1 and a false one as -1.
func (m Model) SpinEnergy(values func(boolexpr.Var) bool) float64 {
	spin := func(v boolexpr.Var) float64 {
		if values(v) {
			return 1
		}
		return -1
	}
	e := m.Offset
	for v, h := range m.Linear {
		e += h * spin(v)
	}
	for p, j := range m.Quadratic {
		e += j * spin(p.U) * spin(p.V)
	}
	return e
}

// DegreeError is returned when a polynomial of degree above two is viewed
// as a quadratic model.
type DegreeError int

func (e DegreeError) Error() string {
	return fmt.Sprintf("polynomial has degree %d, expected at most 2", int(e))
}

// Binary returns p as a binary quadratic model.
func (p *Polynomial) Binary() (Model, error) {
	if d := p.Degree(); d > 2 {
		return Model{}, DegreeError(d)
	}
	m := Model{
		Linear:    make(map[boolexpr.Var]float64),
		Quadratic: make(map[Pair]float64),
	}
	for _, t := range p.terms {
		switch len(t.Monomial) {
		case 0:
			m.Offset += t.Coeff
		case 1:
			m.Linear[t.Monomial[0]] += t.Coeff
		case 2:
			m.Quadratic[Pair{U: t.Monomial[0], V: t.Monomial[1]}] += t.Coeff
		}
	}
	return m, nil
}

// Ising returns p over spins s = 2x - 1.
func (p *Polynomial) Ising() (Model, error) {
	b, err := p.Binary()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		Offset:    b.Offset,
		Linear:    make(map[boolexpr.Var]float64),
		Quadratic: make(map[Pair]float64),
	}
	// x = (1 + s) / 2
	for v, c := range b.Linear {
		m.Offset += c / 2
		m.Linear[v] += c / 2
	}
	for pr, c := range b.Quadratic {
		m.Offset += c / 4
		m.Linear[pr.U] += c / 4
		m.Linear[pr.V] += c / 4
		m.Quadratic[pr] += c / 4
	}
	for v, h := range m.Linear {
		if h > -Epsilon && h < Epsilon {
			delete(m.Linear, v)
		}
	}
	return m, nil
}
