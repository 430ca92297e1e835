package sat

import (
	"fmt"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/latticefold/latticefold/pkg/boolexpr"
)

// DuplicateLabel is returned when two requirements share a label.
type DuplicateLabel string

func (e DuplicateLabel) Error() string {
	return fmt.Sprintf("duplicate requirement label %q in input", string(e))
}

// litMapping translates between expressions over boolexpr variables and
// the literals of the circuit handed to the solver.
type litMapping struct {
	c            *logic.C
	vars         map[boolexpr.Var]z.Lit
	inorder      []boolexpr.Var
	memo         map[*boolexpr.Expr]z.Lit
	requirements map[z.Lit]Requirement
	required     []z.Lit
	ties         []z.Lit
	preferred    []z.Lit
	slack        z.Lit
}

func newLitMapping(p Problem) (*litMapping, error) {
	d := litMapping{
		c:            logic.NewCCap(len(p.Vars)),
		vars:         make(map[boolexpr.Var]z.Lit, len(p.Vars)),
		memo:         make(map[*boolexpr.Expr]z.Lit),
		requirements: make(map[z.Lit]Requirement, len(p.Requirements)),
	}
	for _, v := range p.Vars {
		d.litOfVar(v)
	}

	labels := make(map[string]struct{}, len(p.Requirements))
	for _, r := range p.Requirements {
		if _, ok := labels[r.Label]; ok {
			return nil, DuplicateLabel(r.Label)
		}
		labels[r.Label] = struct{}{}

		// Each requirement gets its own selector literal implying the
		// expression, so that conflicts name requirements even when two
		// of them compile to the same subcircuit.
		m := d.c.Lit()
		d.ties = append(d.ties, d.c.Implies(m, d.LitOf(r.Expr)))
		d.requirements[m] = r
		d.required = append(d.required, m)
	}
	for _, e := range p.Preferences {
		d.preferred = append(d.preferred, d.LitOf(e.Expr))
	}
	d.slack = d.c.Lit()
	return &d, nil
}

func (d *litMapping) litOfVar(v boolexpr.Var) z.Lit {
	if m, ok := d.vars[v]; ok {
		return m
	}
	m := d.c.Lit()
	d.vars[v] = m
	d.inorder = append(d.inorder, v)
	return m
}

// LitOf compiles e into the circuit and returns its output literal.
func (d *litMapping) LitOf(e *boolexpr.Expr) z.Lit {
	if m, ok := d.memo[e]; ok {
		return m
	}
	var m z.Lit
	x, y := e.Operands()
	switch e.Kind() {
	case boolexpr.KindConst:
		if e.Value() {
			m = d.c.T
		} else {
			m = d.c.F
		}
	case boolexpr.KindVar:
		m = d.litOfVar(e.Var())
	case boolexpr.KindNot:
		m = d.LitOf(x).Not()
	case boolexpr.KindAnd:
		m = d.c.And(d.LitOf(x), d.LitOf(y))
	case boolexpr.KindOr:
		m = d.c.Or(d.LitOf(x), d.LitOf(y))
	case boolexpr.KindXnor:
		m = d.c.Xor(d.LitOf(x), d.LitOf(y)).Not()
	}
	d.memo[e] = m
	return m
}

// AddConstraints adds the circuit encoded so far to g, asserting that
// every requirement selector implies its expression.
func (d *litMapping) AddConstraints(g inter.Adder) {
	d.c.ToCnf(g)
	for _, m := range d.ties {
		g.Add(m)
		g.Add(z.LitNull)
	}
	// Mention every variable once so that the model covers inputs no
	// clause constrains.
	for _, v := range d.inorder {
		g.Add(d.vars[v])
	}
	g.Add(d.slack)
	g.Add(z.LitNull)
}

// CardinalityConstrainer builds a sorting network over the preferred
// literals and adds its clauses to g.
func (d *litMapping) CardinalityConstrainer(g inter.Adder) *logic.CardSort {
	clen := d.c.Len()
	cs := d.c.CardSort(d.preferred)
	marks := make([]int8, clen, d.c.Len())
	for i := range marks {
		marks[i] = 1
	}
	for w := 0; w <= cs.N(); w++ {
		marks, _ = d.c.CnfSince(g, marks, cs.Geq(w))
	}
	return cs
}

// Assignment reads the value of every problem variable from a model.
func (d *litMapping) Assignment(g inter.Model) boolexpr.Assignment {
	out := make(boolexpr.Assignment, len(d.inorder))
	for _, v := range d.inorder {
		out[v] = g.Value(d.vars[v])
	}
	return out
}

// Satisfied counts the preferred literals true in a model.
func (d *litMapping) Satisfied(g inter.Model) int {
	n := 0
	for _, m := range d.preferred {
		if g.Value(m) {
			n++
		}
	}
	return n
}

// Conflicts maps the failed assumptions of the last solve to
// requirements.
func (d *litMapping) Conflicts(g inter.Assumable) []Requirement {
	whys := g.Why(nil)
	as := make([]Requirement, 0, len(whys))
	for _, why := range whys {
		if r, ok := d.requirements[why]; ok {
			as = append(as, r)
		}
	}
	return as
}
