package qubo

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/poly"
)

// Ancillary is a variable introduced to stand for the product of two
// others during degree reduction.
type Ancillary struct {
	Var boolexpr.Var
	// Of holds the two variables whose product the ancillary replaces;
	// either may itself be an ancillary.
	Of poly.Pair
	// Factors lists the original variables of the product.
	Factors poly.Monomial
}

// Sense is the direction of an inequality.
type Sense string

const (
	LessEqual    Sense = "<="
	GreaterEqual Sense = ">="
)

// Inequality is a linear constraint sum Coeffs[v]*v Sense Bound.
type Inequality struct {
	Coeffs map[boolexpr.Var]float64
	Sense  Sense
	Bound  float64
}

// Holds reports whether the inequality is satisfied under values.
func (q Inequality) Holds(values func(boolexpr.Var) bool) bool {
	s := 0.0
	for v, c := range q.Coeffs {
		if values(v) {
			s += c
		}
	}
	if q.Sense == LessEqual {
		return s <= q.Bound+poly.Epsilon
	}
	return s >= q.Bound-poly.Epsilon
}

// Format renders the inequality with variables in ascending order.
func (q Inequality) Format(name boolexpr.Namer) string {
	vs := make([]boolexpr.Var, 0, len(q.Coeffs))
	for v := range q.Coeffs {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%g*%s", q.Coeffs[v], name(v))
	}
	return fmt.Sprintf("%s %s %g", strings.Join(parts, " + "), q.Sense, q.Bound)
}

// Inequalities returns the linear constraints forcing the ancillary to
// equal the product of its k factors: a <= b_i for every factor, and
// a - sum b_i >= 1 - k.
func (a Ancillary) Inequalities() []Inequality {
	out := make([]Inequality, 0, len(a.Factors)+1)
	all := Inequality{
		Coeffs: map[boolexpr.Var]float64{a.Var: 1},
		Sense:  GreaterEqual,
		Bound:  float64(1 - len(a.Factors)),
	}
	for _, f := range a.Factors {
		out = append(out, Inequality{
			Coeffs: map[boolexpr.Var]float64{a.Var: 1, f: -1},
			Sense:  LessEqual,
		})
		all.Coeffs[f] = -1
	}
	return append(out, all)
}

// Registry allocates ancillary variables above a fixed base. A product is
// identified by its set of original factors, so the same product reached
// through different pairs shares one ancillary. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.Mutex
	next    boolexpr.Var
	byKey   map[string]int
	list    []Ancillary
	factors map[boolexpr.Var]poly.Monomial
}

// NewRegistry returns a registry allocating variables from first upwards.
func NewRegistry(first boolexpr.Var) *Registry {
	return &Registry{
		next:    first,
		byKey:   make(map[string]int),
		factors: make(map[boolexpr.Var]poly.Monomial),
	}
}

// Factors returns the original variables whose product v stands for; an
// original variable is its own single factor.
func (r *Registry) Factors(v boolexpr.Var) poly.Monomial {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.factorsLocked(v)
}

func (r *Registry) factorsLocked(v boolexpr.Var) poly.Monomial {
	if f, ok := r.factors[v]; ok {
		return f
	}
	return poly.Monomial{v}
}

// Product returns the ancillary standing for u*v, allocating it if the
// product has not been seen.
func (r *Registry) Product(u, v boolexpr.Var) (Ancillary, bool) {
	if v < u {
		u, v = v, u
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	factors := r.factorsLocked(u).Mul(r.factorsLocked(v))
	key := factors.Key()
	if i, ok := r.byKey[key]; ok {
		return r.list[i], false
	}
	a := Ancillary{Var: r.next, Of: poly.Pair{U: u, V: v}, Factors: factors}
	r.next++
	r.byKey[key] = len(r.list)
	r.list = append(r.list, a)
	r.factors[a.Var] = factors
	return a, true
}

// Ancillaries lists the allocated ancillaries in allocation order.
func (r *Registry) Ancillaries() []Ancillary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Ancillary(nil), r.list...)
}

// Complete extends values with every ancillary set to the product of its
// factors.
func (r *Registry) Complete(values boolexpr.Assignment) boolexpr.Assignment {
	out := make(boolexpr.Assignment, len(values))
	for v, b := range values {
		out[v] = b
	}
	for _, a := range r.Ancillaries() {
		out[a.Var] = a.Factors.Eval(values.Value)
	}
	return out
}
