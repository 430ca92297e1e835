package qubo

import (
	"container/heap"
	"sort"

	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/poly"
)

// DefaultStrength returns the penalty weight used to tie ancillaries to
// their products when none is configured: it exceeds the largest change
// the terms of p can undergo when any set of ancillaries is corrected.
func DefaultStrength(p *poly.Polynomial) float64 {
	return 2*p.AbsSum() + 1
}

// Reduce rewrites p into a polynomial of degree at most two by repeatedly
// replacing the pair of variables occurring together in the most terms of
// degree three or more with an ancillary a from reg, and adding
//
//	strength * (u*v - 2*a*u - 2*a*v + 3*a)
//
// which vanishes when a = u*v and is at least strength otherwise. Ties
// between pairs go to the smallest pair, so the result only depends on p.
func Reduce(p *poly.Polynomial, reg *Registry, strength float64) *poly.Polynomial {
	out := poly.New()
	r := newReduction()
	for _, t := range p.Terms() {
		if t.Monomial.Degree() <= 2 {
			out.AddTerm(t.Monomial, t.Coeff)
			continue
		}
		r.insert(t.Monomial, t.Coeff)
	}

	penalised := make(map[boolexpr.Var]bool)
	for {
		pair, ok := r.mostFrequent()
		if !ok {
			break
		}
		a, _ := reg.Product(pair.U, pair.V)
		if !penalised[a.Var] {
			penalised[a.Var] = true
			u, v := a.Of.U, a.Of.V
			out.AddTerm(poly.NewMonomial(u, v), strength)
			out.AddTerm(poly.NewMonomial(a.Var, u), -2*strength)
			out.AddTerm(poly.NewMonomial(a.Var, v), -2*strength)
			out.AddTerm(poly.Monomial{a.Var}, 3*strength)
		}

		for _, id := range r.holding(pair) {
			t := r.terms[id]
			if !t.alive {
				continue
			}
			r.remove(id)
			m := substitute(t.m, pair, a.Var)
			if m.Degree() <= 2 {
				out.AddTerm(m, t.coeff)
				continue
			}
			r.insert(m, t.coeff)
		}
	}
	return out
}

type reducedTerm struct {
	m     poly.Monomial
	coeff float64
	alive bool
}

// reduction tracks the terms of degree three or more still to be reduced,
// together with how many of them hold each pair of variables.
type reduction struct {
	terms   []reducedTerm
	byKey   map[string]int
	counts  map[poly.Pair]int
	holders map[poly.Pair]map[int]struct{}
	queue   pairQueue
}

func newReduction() *reduction {
	return &reduction{
		byKey:   make(map[string]int),
		counts:  make(map[poly.Pair]int),
		holders: make(map[poly.Pair]map[int]struct{}),
	}
}

// insert adds c*m, merging with a live term of the same monomial and
// dropping the result if it cancels.
func (r *reduction) insert(m poly.Monomial, c float64) {
	k := m.Key()
	if id, ok := r.byKey[k]; ok {
		r.terms[id].coeff += c
		if s := r.terms[id].coeff; s > -poly.Epsilon && s < poly.Epsilon {
			r.remove(id)
		}
		return
	}
	id := len(r.terms)
	r.terms = append(r.terms, reducedTerm{m: m, coeff: c, alive: true})
	r.byKey[k] = id
	r.eachPair(m, func(p poly.Pair) {
		hs, ok := r.holders[p]
		if !ok {
			hs = make(map[int]struct{})
			r.holders[p] = hs
		}
		hs[id] = struct{}{}
		r.counts[p]++
		heap.Push(&r.queue, pairCount{pair: p, count: r.counts[p]})
	})
}

func (r *reduction) remove(id int) {
	t := &r.terms[id]
	t.alive = false
	delete(r.byKey, t.m.Key())
	r.eachPair(t.m, func(p poly.Pair) {
		delete(r.holders[p], id)
		r.counts[p]--
		if r.counts[p] == 0 {
			delete(r.counts, p)
			delete(r.holders, p)
			return
		}
		heap.Push(&r.queue, pairCount{pair: p, count: r.counts[p]})
	})
}

func (r *reduction) eachPair(m poly.Monomial, f func(poly.Pair)) {
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			f(poly.Pair{U: m[i], V: m[j]})
		}
	}
}

// mostFrequent returns the pair held by the most terms, the smallest pair
// among equals. Queue entries whose count is out of date are discarded.
func (r *reduction) mostFrequent() (poly.Pair, bool) {
	for r.queue.Len() > 0 {
		top := r.queue[0]
		if n, ok := r.counts[top.pair]; ok && n == top.count {
			return top.pair, true
		}
		heap.Pop(&r.queue)
	}
	return poly.Pair{}, false
}

// holding lists the terms holding p in insertion order.
func (r *reduction) holding(p poly.Pair) []int {
	ids := make([]int, 0, len(r.holders[p]))
	for id := range r.holders[p] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type pairCount struct {
	pair  poly.Pair
	count int
}

// pairQueue is a max-heap on count, then a min-heap on the pair.
type pairQueue []pairCount

func (q pairQueue) Len() int { return len(q) }

func (q pairQueue) Less(i, j int) bool {
	if q[i].count != q[j].count {
		return q[i].count > q[j].count
	}
	if q[i].pair.U != q[j].pair.U {
		return q[i].pair.U < q[j].pair.U
	}
	return q[i].pair.V < q[j].pair.V
}

func (q pairQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pairQueue) Push(x interface{}) { *q = append(*q, x.(pairCount)) }

func (q *pairQueue) Pop() interface{} {
	old := *q
	x := old[len(old)-1]
	*q = old[:len(old)-1]
	return x
}

func substitute(m poly.Monomial, pair poly.Pair, a boolexpr.Var) poly.Monomial {
	vs := make([]boolexpr.Var, 0, len(m)-1)
	for _, v := range m {
		if v != pair.U && v != pair.V {
			vs = append(vs, v)
		}
	}
	return poly.NewMonomial(append(vs, a)...)
}
