// Package qubo compiles the folding problem of a residue sequence on a
// lattice into a quadratic unconstrained binary objective: pinned bits are
// substituted, each constraint and contact indicator is simplified and
// expanded into a polynomial, the pieces are weighted and summed, and the
// sum is reduced to degree two with ancillary variables.
package qubo

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/latticefold/latticefold/pkg/assemble"
	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/energy"
	"github.com/latticefold/latticefold/pkg/lattice"
	"github.com/latticefold/latticefold/pkg/metrics"
	"github.com/latticefold/latticefold/pkg/poly"
)

// Compiler holds the settings shared by every compile. It is safe for
// concurrent use.
type Compiler struct {
	scheme      *lattice.Scheme
	logger      logrus.FieldLogger
	penalty     float64
	strength    float64
	budget      int
	workers     int
	disjunction Disjunction
}

func New(options ...Option) (*Compiler, error) {
	c := Compiler{}
	for _, option := range append(options, defaults...) {
		if err := option(&c); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// Scheme returns the lattice the compiler targets.
func (c *Compiler) Scheme() *lattice.Scheme { return c.scheme }

// Compile looks up the contact energies of sequence under model and
// compiles the folding problem. Unknown models and residues fail before
// any expression is built.
func (c *Compiler) Compile(ctx context.Context, sequence string, model energy.Model) (*Result, error) {
	m, err := energy.ForSequence(sequence, model)
	if err != nil {
		return nil, errors.Wrapf(err, "energy model %s", model)
	}
	r, err := c.CompileMatrix(ctx, m)
	if err != nil {
		return nil, err
	}
	r.Sequence = sequence
	return r, nil
}

// item is one expression awaiting lowering to a polynomial. Contact
// indicators have no family.
type item struct {
	family int
	label  string
	expr   *boolexpr.Expr
}

type lowered struct {
	term       Term
	diagnostic *Diagnostic
}

// CompileMatrix compiles the folding problem of a chain whose contact
// energies are given by m.
func (c *Compiler) CompileMatrix(ctx context.Context, m energy.Matrix) (r *Result, err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			metrics.RegisterCompileFailure(c.scheme.Name, time.Since(start))
			return
		}
		metrics.RegisterCompileSuccess(c.scheme.Name, time.Since(start))
	}()

	if m.Len() == 0 {
		return nil, configurationError("sequence", "empty sequence")
	}
	if err := m.Validate(); err != nil {
		return nil, &ConfigurationError{Field: "energy", Err: err}
	}

	n := m.Len()
	log := c.logger.WithFields(logrus.Fields{"lattice": c.scheme.Name, "length": n})
	actx := assemble.NewContext(c.scheme, n)
	r = &Result{
		Scheme:   c.scheme,
		Length:   n,
		Fixed:    c.scheme.Fixed(n),
		Free:     c.scheme.FreeVars(n),
		registry: NewRegistry(boolexpr.Var(c.scheme.VarCount(n))),
	}

	var items []item
	for i, f := range actx.Families() {
		r.Constraints = append(r.Constraints, Constraint{Family: f.Name})
		if c.disjunction == Exact {
			items = append(items, item{family: i, label: f.Name, expr: f.Expr()})
			continue
		}
		for _, t := range f.Terms {
			items = append(items, item{family: i, label: t.Label, expr: t.Expr})
		}
	}
	constraintItems := len(items)

	var bound float64
	for _, p := range c.scheme.ContactPairs(n) {
		e := m.At(p[0], p[1])
		if e == 0 {
			continue
		}
		bound += math.Abs(e)
		r.Interactions = append(r.Interactions, Interaction{I: p[0], J: p[1], Energy: e})
		items = append(items, item{
			family: -1,
			label:  fmt.Sprintf("contact(%d,%d)", p[0], p[1]),
			expr:   actx.Adjacent(p[0], p[1]),
		})
	}
	if len(c.scheme.OverlapPairs(n)) == 0 && len(c.scheme.ContactPairs(n)) == 0 {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Kind:    DegenerateInput,
			Message: fmt.Sprintf("a chain of %d residues has no overlap or contact pairs on the %s lattice", n, c.scheme.Name),
		})
	}

	r.Penalty = bound + 1
	if c.penalty > 0 {
		if c.penalty <= bound {
			return nil, configurationError("penalty", "%g does not exceed the total contact energy %g", c.penalty, bound)
		}
		r.Penalty = c.penalty
	}

	out, err := c.lower(ctx, n, items)
	if err != nil {
		return nil, err
	}

	for k := 0; k < constraintItems; k++ {
		f := items[k].family
		r.Constraints[f].Terms = append(r.Constraints[f].Terms, out[k].term)
	}
	for i := range r.Interactions {
		r.Interactions[i].Term = out[constraintItems+i].term
	}
	for _, l := range out {
		if l.diagnostic == nil {
			continue
		}
		if l.diagnostic.Kind == SimplificationIncomplete {
			log.WithField("term", l.diagnostic.Subject).Warn(l.diagnostic.Message)
			metrics.EmitIncompleteSimplification(c.scheme.Name)
		}
		r.Diagnostics = append(r.Diagnostics, *l.diagnostic)
	}

	r.Expanded = poly.New()
	for _, in := range r.Interactions {
		r.Expanded.Add(in.Term.Poly, in.Energy)
	}
	for _, con := range r.Constraints {
		for _, t := range con.Terms {
			r.Expanded.Add(t.Poly, r.Penalty)
		}
	}

	r.Strength = c.strength
	if r.Strength == 0 {
		r.Strength = DefaultStrength(r.Expanded)
	}
	r.Objective = Reduce(r.Expanded, r.registry, r.Strength)
	r.Ancillaries = r.registry.Ancillaries()

	log.WithFields(logrus.Fields{
		"terms":       len(items),
		"monomials":   r.Objective.Len(),
		"ancillaries": len(r.Ancillaries),
		"penalty":     r.Penalty,
	}).Debug("compiled objective")
	metrics.EmitObjective(c.scheme.Name, r.Objective.Len(), len(r.Ancillaries))
	return r, nil
}

// lower simplifies and expands every item concurrently. Results keep the
// order of items.
func (c *Compiler) lower(ctx context.Context, n int, items []item) ([]lowered, error) {
	fixed := c.scheme.Fixed(n)
	simplifier := boolexpr.Simplifier{Vars: c.scheme.VarCount(n), NodeBudget: c.budget}
	out := make([]lowered, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, err := lowerOne(simplifier, items[i], fixed)
			if err != nil {
				return errors.Wrapf(err, "lowering %s", items[i].label)
			}
			out[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func lowerOne(s boolexpr.Simplifier, it item, fixed boolexpr.Assignment) (lowered, error) {
	e := boolexpr.SubstituteAll(it.expr, fixed)
	l := lowered{term: Term{Label: it.label, Expr: e}}

	canon, err := s.Canonical(e)
	var incomplete *boolexpr.IncompleteError
	switch {
	case errors.As(err, &incomplete):
		l.term.Poly = Expand(e)
		l.diagnostic = &Diagnostic{
			Kind:    SimplificationIncomplete,
			Subject: it.label,
			Message: fmt.Sprintf("expanded without simplification: %v", err),
		}
		return l, nil
	case err != nil:
		return l, err
	}

	l.term.Canonical = canon
	l.term.Poly = ExpandCanonical(canon)
	if canon.IsFalse() && it.family < 0 {
		l.diagnostic = &Diagnostic{
			Kind:    UnreachableContact,
			Subject: it.label,
			Message: "residues can never be adjacent",
		}
	}
	return l, nil
}
