// Package assemble turns a lattice scheme and a chain length into the
// boolean constraints of the folding problem: invalid step encodings,
// immediate reversals, residue overlaps and residue adjacency.
package assemble

import (
	"sync"

	"github.com/latticefold/latticefold/pkg/adder"
	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/lattice"
)

type sumKey struct {
	axis           int
	negative       bool
	start, end, by int
}

type holdsKey struct {
	axis, dir, step int
	negative        bool
}

// Context owns the step variables of one chain on one lattice and caches
// the adder networks built over them. It is safe for concurrent use.
type Context struct {
	scheme *lattice.Scheme
	length int
	steps  []lattice.Bits

	mu    sync.Mutex
	sums  map[sumKey]adder.Sum
	holds map[holdsKey]*boolexpr.Expr
}

// NewContext allocates the step variables of a chain of length residues.
// Bit b of step t is the variable scheme.Var(t, b).
func NewContext(scheme *lattice.Scheme, length int) *Context {
	c := &Context{
		scheme: scheme,
		length: length,
		sums:   make(map[sumKey]adder.Sum),
		holds:  make(map[holdsKey]*boolexpr.Expr),
	}
	for t := 0; t < lattice.Steps(length); t++ {
		bits := make(lattice.Bits, scheme.BitsPerStep)
		for b := range bits {
			bits[b] = boolexpr.Variable(scheme.Var(t, b))
		}
		c.steps = append(c.steps, bits)
	}
	return c
}

// Scheme returns the lattice of the chain.
func (c *Context) Scheme() *lattice.Scheme { return c.scheme }

// Length returns the number of residues.
func (c *Context) Length() int { return c.length }

// Steps returns the number of steps.
func (c *Context) Steps() int { return len(c.steps) }

// Step returns the bit expressions of step t.
func (c *Context) Step(t int) lattice.Bits { return c.steps[t] }

// Vars returns the size of the step variable universe.
func (c *Context) Vars() int { return c.scheme.VarCount(c.length) }

// AxisSum counts, over the steps [start, end), the positive or negative
// direction predicates of an axis that hold, plus offset.
func (c *Context) AxisSum(axis int, negative bool, start, end, offset int) adder.Sum {
	key := sumKey{axis: axis, negative: negative, start: start, end: end, by: offset}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sums[key]; ok {
		return s
	}
	dirs := c.scheme.Axes[axis].Plus
	if negative {
		dirs = c.scheme.Axes[axis].Minus
	}
	var terms []*boolexpr.Expr
	for t := start; t < end; t++ {
		for d := range dirs {
			terms = append(terms, c.holdsLocked(axis, d, t, negative, dirs[d]))
		}
	}
	s := adder.Offset(offset, terms)
	c.sums[key] = s
	return s
}

func (c *Context) holdsLocked(axis, dir, t int, negative bool, d lattice.Direction) *boolexpr.Expr {
	key := holdsKey{axis: axis, dir: dir, step: t, negative: negative}
	if e, ok := c.holds[key]; ok {
		return e
	}
	e := d.Holds(c.steps[t])
	c.holds[key] = e
	return e
}
