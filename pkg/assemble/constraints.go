package assemble

import (
	"fmt"
	"math/big"

	"github.com/latticefold/latticefold/pkg/adder"
	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/lattice"
)

// Families of structural constraints.
const (
	FamilyRedundancy = "redundancy"
	FamilyBacktrack  = "backtrack"
	FamilyOverlap    = "overlap"
)

// Term is one violation condition of a constraint family.
type Term struct {
	Label string
	Expr  *boolexpr.Expr
}

// Family groups the terms of one kind of structural violation. The
// family is violated when any of its terms holds.
type Family struct {
	Name  string
	Terms []Term
}

// Expr returns the disjunction of the family's terms.
func (f Family) Expr() *boolexpr.Expr {
	es := make([]*boolexpr.Expr, len(f.Terms))
	for i, t := range f.Terms {
		es[i] = t.Expr
	}
	return boolexpr.Ors(es...)
}

// Redundancy holds, per step, when the step bits encode no move.
func (c *Context) Redundancy() Family {
	f := Family{Name: FamilyRedundancy}
	if len(c.scheme.Invalid) == 0 {
		return f
	}
	invalid := lattice.Patterns(c.scheme.Invalid...)
	for t := range c.steps {
		f.Terms = append(f.Terms, Term{
			Label: fmt.Sprintf("redundancy(%d)", t),
			Expr:  invalid(c.steps[t]),
		})
	}
	return f
}

// Backtrack holds, per pair of consecutive steps, when the second step
// undoes the first.
func (c *Context) Backtrack() Family {
	f := Family{Name: FamilyBacktrack}
	for t := 0; t+1 < len(c.steps); t++ {
		var reversals []*boolexpr.Expr
		for _, m := range c.scheme.Moves {
			r, ok := c.scheme.Reverse(m)
			if !ok {
				continue
			}
			reversals = append(reversals, boolexpr.And(
				lattice.Pattern(m.Code)(c.steps[t]),
				lattice.Pattern(r.Code)(c.steps[t+1]),
			))
		}
		f.Terms = append(f.Terms, Term{
			Label: fmt.Sprintf("backtrack(%d)", t),
			Expr:  boolexpr.Ors(reversals...),
		})
	}
	return f
}

// Overlap holds, per candidate pair, when two residues occupy the same
// site.
func (c *Context) Overlap() Family {
	f := Family{Name: FamilyOverlap}
	for _, p := range c.scheme.OverlapPairs(c.length) {
		f.Terms = append(f.Terms, Term{
			Label: fmt.Sprintf("overlap(%d,%d)", p[0], p[1]),
			Expr:  c.Coincide(p[0], p[1]),
		})
	}
	return f
}

// Families returns every structural constraint family.
func (c *Context) Families() []Family {
	return []Family{c.Redundancy(), c.Backtrack(), c.Overlap()}
}

// Coincide holds when residues i < j sit on the same site: along every
// axis the steps between them move as far forward as backward.
func (c *Context) Coincide(i, j int) *boolexpr.Expr {
	es := make([]*boolexpr.Expr, len(c.scheme.Axes))
	for a := range c.scheme.Axes {
		es[a] = adder.Equal(c.AxisSum(a, false, i, j, 0), c.AxisSum(a, true, i, j, 0))
	}
	return boolexpr.Ands(es...)
}

// Adjacent holds when residues i < j sit on neighbouring sites: their
// displacement matches one of the lattice's neighbour rules.
func (c *Context) Adjacent(i, j int) *boolexpr.Expr {
	rules := make([]*boolexpr.Expr, 0, len(c.scheme.Rules))
	for _, rule := range c.scheme.Rules {
		axes := make([]*boolexpr.Expr, len(rule))
		for a, m := range rule {
			plus, minus := c.AxisSum(a, false, i, j, 0), c.AxisSum(a, true, i, j, 0)
			if m == 0 {
				axes[a] = adder.Equal(plus, minus)
				continue
			}
			axes[a] = boolexpr.Or(
				adder.Equal(c.AxisSum(a, false, i, j, m), minus),
				adder.Equal(plus, c.AxisSum(a, true, i, j, m)),
			)
		}
		rules = append(rules, boolexpr.Ands(axes...))
	}
	return boolexpr.Ors(rules...)
}

// Valid holds exactly for the assignments encoding a self-avoiding walk.
func (c *Context) Valid() *boolexpr.Expr {
	fs := c.Families()
	violations := make([]*boolexpr.Expr, len(fs))
	for i, f := range fs {
		violations[i] = f.Expr()
	}
	return boolexpr.Not(boolexpr.Ors(violations...))
}

// Conformations counts the self-avoiding walks of the chain that agree
// with the scheme's pinned bits.
func (c *Context) Conformations(budget int) (*big.Int, error) {
	fixed := c.scheme.Fixed(c.length)
	valid := boolexpr.SubstituteAll(c.Valid(), fixed)
	vars := c.Vars()
	if vars == 0 {
		return big.NewInt(1), nil
	}
	canon, err := boolexpr.Simplifier{Vars: vars, NodeBudget: budget}.Canonical(valid)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Rsh(canon.SatCount(), uint(len(fixed))), nil
}
