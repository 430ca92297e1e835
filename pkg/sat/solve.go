// Package sat searches for assignments satisfying a set of boolean
// requirements while maximising the number of satisfied preferences,
// using a CDCL solver over the circuit encoding of the expressions.
package sat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-air/gini"

	"github.com/latticefold/latticefold/pkg/boolexpr"
)

// Requirement is an expression that must hold in every solution.
type Requirement struct {
	Label string
	Expr  *boolexpr.Expr
}

func (r Requirement) String() string {
	return r.Label
}

// Preference is an expression that solutions should satisfy when
// possible.
type Preference struct {
	Label string
	Expr  *boolexpr.Expr
}

// Problem is the input of a Solver.
type Problem struct {
	// Vars lists the variables reported in solutions. Variables that
	// only appear in expressions are reported as well.
	Vars         []boolexpr.Var
	Requirements []Requirement
	Preferences  []Preference
}

// Solution is an assignment satisfying every requirement.
type Solution struct {
	Assignment boolexpr.Assignment
	// Satisfied counts the preferences holding under Assignment.
	Satisfied int
	// Optimal is set when no assignment satisfies more preferences.
	Optimal bool
}

var Incomplete = errors.New("cancelled before a solution could be found")

// NotSatisfiable is an error composed of a set of requirements that is
// sufficient to make a solution impossible.
type NotSatisfiable []Requirement

func (e NotSatisfiable) Error() string {
	const msg = "constraints not satisfiable"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, a := range e {
		s[i] = a.String()
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(s, ", "))
}

type Solver interface {
	Solve(context.Context) (*Solution, error)
}

type solver struct {
	g      *gini.Gini
	lits   *litMapping
	tracer Tracer
	poll   time.Duration
}

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// Solve searches for an assignment satisfying every requirement, then
// raises the number of satisfied preferences one at a time until no
// better assignment exists. If the context is cancelled after a first
// solution was found, the best solution so far is returned together with
// Incomplete.
func (s *solver) Solve(ctx context.Context) (*Solution, error) {
	if ctx.Err() != nil {
		return nil, Incomplete
	}
	s.lits.AddConstraints(s.g)
	cs := s.lits.CardinalityConstrainer(s.g)

	s.g.Assume(s.lits.required...)
	outcome, err := s.solve(ctx)
	if err != nil {
		return nil, err
	}
	if outcome == unsatisfiable {
		conflicts := s.lits.Conflicts(s.g)
		s.tracer.Trace(position{bound: 0, outcome: outcome, conflicts: conflicts})
		return nil, NotSatisfiable(conflicts)
	}

	best := s.solution()
	s.tracer.Trace(position{bound: best.Satisfied, outcome: outcome})
	for w := best.Satisfied + 1; w <= cs.N(); w = best.Satisfied + 1 {
		s.g.Assume(s.lits.required...)
		s.g.Assume(cs.Geq(w))
		outcome, err := s.solve(ctx)
		if err != nil {
			return best, err
		}
		s.tracer.Trace(position{bound: w, outcome: outcome})
		if outcome != satisfiable {
			break
		}
		best = s.solution()
	}
	best.Optimal = true
	return best, nil
}

func (s *solver) solution() *Solution {
	return &Solution{
		Assignment: s.lits.Assignment(s.g),
		Satisfied:  s.lits.Satisfied(s.g),
	}
}

// solve runs the solver in the background, polling for a result until
// ctx is done.
func (s *solver) solve(ctx context.Context) (int, error) {
	h := s.g.GoSolve()
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		if result, ok := h.Test(); ok {
			return result, nil
		}
		select {
		case <-ctx.Done():
			h.Stop()
			return unknown, Incomplete
		case <-ticker.C:
		}
	}
}

func New(options ...Option) (Solver, error) {
	s := solver{g: gini.New()}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

func WithInput(p Problem) Option {
	return func(s *solver) error {
		var err error
		s.lits, err = newLitMapping(p)
		return err
	}
}

func WithTracer(t Tracer) Option {
	return func(s *solver) error {
		s.tracer = t
		return nil
	}
}

// WithPollInterval sets how often a running search checks for
// cancellation.
func WithPollInterval(d time.Duration) Option {
	return func(s *solver) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %s", d)
		}
		s.poll = d
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.lits == nil {
			var err error
			s.lits, err = newLitMapping(Problem{})
			return err
		}
		return nil
	},
	func(s *solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
	func(s *solver) error {
		if s.poll == 0 {
			s.poll = 5 * time.Millisecond
		}
		return nil
	},
}
