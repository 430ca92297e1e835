package qubo

import (
	"fmt"

	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/sat"
)

// Problem states the compile as a satisfiability problem over the free
// step variables: every constraint term must be false, and contacts with
// negative energy are preferred.
func (r *Result) Problem() sat.Problem {
	p := sat.Problem{Vars: append([]boolexpr.Var(nil), r.Free...)}
	for _, c := range r.Constraints {
		for _, t := range c.Terms {
			p.Requirements = append(p.Requirements, sat.Requirement{
				Label: t.Label,
				Expr:  boolexpr.Not(t.Expr),
			})
		}
	}
	for _, in := range r.Interactions {
		if in.Energy >= 0 {
			continue
		}
		p.Preferences = append(p.Preferences, sat.Preference{
			Label: fmt.Sprintf("contact(%d,%d)", in.I, in.J),
			Expr:  in.Term.Expr,
		})
	}
	return p
}
