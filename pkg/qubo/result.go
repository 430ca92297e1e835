package qubo

import (
	"fmt"
	"sort"

	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/lattice"
	"github.com/latticefold/latticefold/pkg/poly"
)

// Term is one lowered expression of a compile.
type Term struct {
	Label string
	// Expr is the expression with the pinned bits substituted.
	Expr *boolexpr.Expr
	// Canonical is nil when simplification ran out of budget.
	Canonical *boolexpr.Canonical
	// Poly equals one exactly when Expr holds.
	Poly *poly.Polynomial
}

// Formula renders the term as a disjunction of cubes when it was
// simplified, and as the raw expression otherwise.
func (t Term) Formula(name boolexpr.Namer) string {
	if t.Canonical != nil {
		return t.Canonical.DNF().Format(name)
	}
	return boolexpr.Format(t.Expr, name)
}

// Constraint is a lowered constraint family. Each term holding adds the
// penalty to the objective.
type Constraint struct {
	Family string
	Terms  []Term
}

// Interaction is a contact candidate with non-zero energy.
type Interaction struct {
	I, J   int
	Energy float64
	// Term holds when residues I and J are lattice neighbours.
	Term Term
}

// Result is the compiled folding problem of one chain.
type Result struct {
	Scheme   *lattice.Scheme
	Sequence string
	Length   int
	// Penalty weighs each violated constraint term.
	Penalty float64
	// Strength weighs each ancillary that differs from its product.
	Strength float64
	Fixed    boolexpr.Assignment
	// Free lists the step variables left to the solver.
	Free         []boolexpr.Var
	Constraints  []Constraint
	Interactions []Interaction
	// Expanded is the weighted sum of every term before degree reduction.
	Expanded *poly.Polynomial
	// Objective is Expanded reduced to degree two.
	Objective   *poly.Polynomial
	Ancillaries []Ancillary
	Diagnostics []Diagnostic

	registry *Registry
}

// Name renders step variables as q_<step><bit> and ancillaries as
// a_<index>.
func (r *Result) Name(v boolexpr.Var) string {
	if n := r.Scheme.VarCount(r.Length); int(v) >= n {
		return fmt.Sprintf("a_%d", int(v)-n)
	}
	return r.Scheme.VarName(v)
}

// Vars lists the variables of the objective: the free step variables
// followed by the ancillaries.
func (r *Result) Vars() []boolexpr.Var {
	out := append([]boolexpr.Var(nil), r.Free...)
	for _, a := range r.Ancillaries {
		out = append(out, a.Var)
	}
	return out
}

// Interpretation describes what a sample of the objective's variables
// encodes.
type Interpretation struct {
	// Assignment holds every variable: pinned and sampled step bits, and
	// ancillaries taken from the sample or derived from their factors.
	Assignment boolexpr.Assignment
	// Violations lists the labels of the constraint terms holding.
	Violations []string
	// Contacts lists the interactions whose residues are neighbours.
	Contacts [][2]int
	// Energy is the contact energy of the conformation.
	Energy float64
	// Objective is the value of the compiled objective.
	Objective float64
	// Positions is nil when a step encodes no move.
	Positions []lattice.Vector
}

// Valid reports whether the sample encodes a self-avoiding walk.
func (i *Interpretation) Valid() bool {
	return len(i.Violations) == 0
}

// Interpret evaluates every term of the compile under values. Pinned bits
// override values; ancillaries missing from values are set to the product
// of their factors.
func (r *Result) Interpret(values boolexpr.Assignment) (*Interpretation, error) {
	full := make(boolexpr.Assignment, len(values)+len(r.Fixed))
	for v, b := range values {
		full[v] = b
	}
	for v, b := range r.Fixed {
		full[v] = b
	}
	for _, v := range r.Free {
		if _, ok := full[v]; !ok {
			return nil, fmt.Errorf("no value for %s", r.Name(v))
		}
	}
	for v, b := range r.registry.Complete(full) {
		if _, ok := full[v]; !ok {
			full[v] = b
		}
	}

	out := &Interpretation{Assignment: full}
	for _, c := range r.Constraints {
		for _, t := range c.Terms {
			if t.Expr.Eval(full.Value) {
				out.Violations = append(out.Violations, t.Label)
			}
		}
	}
	for _, in := range r.Interactions {
		if in.Term.Expr.Eval(full.Value) {
			out.Contacts = append(out.Contacts, [2]int{in.I, in.J})
			out.Energy += in.Energy
		}
	}
	sort.Strings(out.Violations)
	out.Objective = r.Objective.Evaluate(full.Value)
	if positions, err := r.Scheme.Decode(r.Length, full.Value); err == nil {
		out.Positions = positions
	}
	return out, nil
}

// Sample interprets bits given in the order of Vars. Missing ancillary
// bits are derived from their factors.
func (r *Result) Sample(bits []bool) (*Interpretation, error) {
	vars := r.Vars()
	if len(bits) < len(r.Free) || len(bits) > len(vars) {
		return nil, fmt.Errorf("expected between %d and %d bits, got %d", len(r.Free), len(vars), len(bits))
	}
	values := make(boolexpr.Assignment, len(bits))
	for i, b := range bits {
		values[vars[i]] = b
	}
	return r.Interpret(values)
}
