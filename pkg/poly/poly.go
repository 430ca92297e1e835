// Package poly implements multilinear polynomials with real coefficients
// over boolean variables, the representation of the optimisation
// objectives the compiler emits.
package poly

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/latticefold/latticefold/pkg/boolexpr"
)

// Epsilon is the magnitude below which a coefficient is dropped.
const Epsilon = 1e-9

// Monomial is a product of distinct variables, kept sorted. The empty
// monomial is the constant one.
type Monomial []boolexpr.Var

// NewMonomial sorts and deduplicates vs; x*x = x over booleans.
func NewMonomial(vs ...boolexpr.Var) Monomial {
	m := append(Monomial(nil), vs...)
	sort.Slice(m, func(i, j int) bool { return m[i] < m[j] })
	out := m[:0]
	for i, v := range m {
		if i == 0 || v != m[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// Degree returns the number of variables in m.
func (m Monomial) Degree() int { return len(m) }

// Contains reports whether v is a factor of m.
func (m Monomial) Contains(v boolexpr.Var) bool {
	i := sort.Search(len(m), func(i int) bool { return m[i] >= v })
	return i < len(m) && m[i] == v
}

// Mul returns the product of m and o.
func (m Monomial) Mul(o Monomial) Monomial {
	out := make(Monomial, 0, len(m)+len(o))
	i, j := 0, 0
	for i < len(m) && j < len(o) {
		switch {
		case m[i] < o[j]:
			out = append(out, m[i])
			i++
		case m[i] > o[j]:
			out = append(out, o[j])
			j++
		default:
			out = append(out, m[i])
			i++
			j++
		}
	}
	out = append(out, m[i:]...)
	return append(out, o[j:]...)
}

// Eval reports whether every factor of m holds.
func (m Monomial) Eval(values func(boolexpr.Var) bool) bool {
	for _, v := range m {
		if !values(v) {
			return false
		}
	}
	return true
}

// Format renders m as a*b*c, or 1 when empty.
func (m Monomial) Format(name boolexpr.Namer) string {
	if len(m) == 0 {
		return "1"
	}
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = name(v)
	}
	return strings.Join(parts, "*")
}

// Key returns a compact string identifying m, usable as a map key.
func (m Monomial) Key() string {
	buf := make([]byte, 4*len(m))
	for i, v := range m {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(v))
	}
	return string(buf)
}

// Less orders monomials by degree, then lexicographically.
func (m Monomial) Less(o Monomial) bool {
	if len(m) != len(o) {
		return len(m) < len(o)
	}
	for i := range m {
		if m[i] != o[i] {
			return m[i] < o[i]
		}
	}
	return false
}

// Term is a monomial with its coefficient.
type Term struct {
	Monomial Monomial
	Coeff    float64
}

// Polynomial is a sum of terms over distinct monomials. The zero value is
// not usable; use New.
type Polynomial struct {
	terms map[string]Term
}

// New returns the zero polynomial.
func New() *Polynomial {
	return &Polynomial{terms: make(map[string]Term)}
}

// Constant returns the polynomial c.
func Constant(c float64) *Polynomial {
	p := New()
	p.AddTerm(nil, c)
	return p
}

// Variable returns the polynomial v.
func Variable(v boolexpr.Var) *Polynomial {
	p := New()
	p.AddTerm(Monomial{v}, 1)
	return p
}

// AddTerm adds c*m to p, dropping the monomial when its coefficient
// cancels.
func (p *Polynomial) AddTerm(m Monomial, c float64) {
	k := m.Key()
	t, ok := p.terms[k]
	if !ok {
		t = Term{Monomial: m}
	}
	t.Coeff += c
	if math.Abs(t.Coeff) < Epsilon {
		delete(p.terms, k)
		return
	}
	p.terms[k] = t
}

// Add adds scale*q to p and returns p.
func (p *Polynomial) Add(q *Polynomial, scale float64) *Polynomial {
	for _, t := range q.terms {
		p.AddTerm(t.Monomial, scale*t.Coeff)
	}
	return p
}

// Scale multiplies every coefficient of p by c and returns p.
func (p *Polynomial) Scale(c float64) *Polynomial {
	if c == 0 {
		p.terms = make(map[string]Term)
		return p
	}
	for k, t := range p.terms {
		t.Coeff *= c
		p.terms[k] = t
	}
	return p
}

// Clone returns a copy of p.
func (p *Polynomial) Clone() *Polynomial {
	return New().Add(p, 1)
}

// Mul returns the multilinear product of p and q.
func Mul(p, q *Polynomial) *Polynomial {
	out := New()
	for _, a := range p.terms {
		for _, b := range q.terms {
			out.AddTerm(a.Monomial.Mul(b.Monomial), a.Coeff*b.Coeff)
		}
	}
	return out
}

// Sum returns the sum of ps.
func Sum(ps ...*Polynomial) *Polynomial {
	out := New()
	for _, p := range ps {
		out.Add(p, 1)
	}
	return out
}

// Coeff returns the coefficient of m in p.
func (p *Polynomial) Coeff(m Monomial) float64 {
	return p.terms[m.Key()].Coeff
}

// Len returns the number of terms with a non-zero coefficient.
func (p *Polynomial) Len() int { return len(p.terms) }

// IsZero reports whether p has no terms.
func (p *Polynomial) IsZero() bool { return len(p.terms) == 0 }

// Degree returns the largest monomial degree of p, zero for constants and
// the zero polynomial.
func (p *Polynomial) Degree() int {
	d := 0
	for _, t := range p.terms {
		if len(t.Monomial) > d {
			d = len(t.Monomial)
		}
	}
	return d
}

// Terms returns the terms of p ordered by monomial.
func (p *Polynomial) Terms() []Term {
	out := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Monomial.Less(out[j].Monomial) })
	return out
}

// Vars returns the variables occurring in p, in ascending order.
func (p *Polynomial) Vars() []boolexpr.Var {
	seen := make(map[boolexpr.Var]struct{})
	for _, t := range p.terms {
		for _, v := range t.Monomial {
			seen[v] = struct{}{}
		}
	}
	out := make([]boolexpr.Var, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AbsSum returns the sum of the absolute values of the non-constant
// coefficients.
func (p *Polynomial) AbsSum() float64 {
	s := 0.0
	for _, t := range p.terms {
		if len(t.Monomial) > 0 {
			s += math.Abs(t.Coeff)
		}
	}
	return s
}

// Evaluate computes the value of p under values.
func (p *Polynomial) Evaluate(values func(boolexpr.Var) bool) float64 {
	s := 0.0
	for _, t := range p.terms {
		if t.Monomial.Eval(values) {
			s += t.Coeff
		}
	}
	return s
}

// Format renders p one term per line as "coeff monomial".
func (p *Polynomial) Format(name boolexpr.Namer) string {
	var sb strings.Builder
	for _, t := range p.Terms() {
		fmt.Fprintf(&sb, "%g\t%s\n", t.Coeff, t.Monomial.Format(name))
	}
	return sb.String()
}

func (p *Polynomial) String() string {
	return p.Format(boolexpr.DefaultNamer)
}
