package qubo

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/lattice"
)

// Disjunction selects how a constraint family is turned into a penalty.
type Disjunction string

const (
	// Sum penalises every violated term of a family separately.
	Sum Disjunction = "sum"
	// Exact penalises a violated family once, expanding the disjunction
	// of its terms.
	Exact Disjunction = "exact"
)

func ParseDisjunction(s string) (Disjunction, error) {
	switch d := Disjunction(s); d {
	case Sum, Exact:
		return d, nil
	}
	return "", configurationError("disjunction", "%q is not one of %q, %q", s, Sum, Exact)
}

type Option func(c *Compiler) error

// WithLattice selects the registered lattice with the given number of
// neighbours.
func WithLattice(a lattice.Arity) Option {
	return func(c *Compiler) error {
		s, err := lattice.ForArity(a)
		if err != nil {
			return &ConfigurationError{Field: "lattice", Err: err}
		}
		c.scheme = s
		return nil
	}
}

func WithScheme(s *lattice.Scheme) Option {
	return func(c *Compiler) error {
		c.scheme = s
		return nil
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Compiler) error {
		c.logger = l
		return nil
	}
}

// WithPenalty overrides the constraint penalty. It must exceed the sum of
// the absolute contact energies of every compiled sequence.
func WithPenalty(p float64) Option {
	return func(c *Compiler) error {
		if p <= 0 {
			return configurationError("penalty", "must be positive, got %g", p)
		}
		c.penalty = p
		return nil
	}
}

// WithReductionStrength overrides the weight tying ancillaries to the
// products they replace.
func WithReductionStrength(s float64) Option {
	return func(c *Compiler) error {
		if s <= 0 {
			return configurationError("reductionStrength", "must be positive, got %g", s)
		}
		c.strength = s
		return nil
	}
}

// WithNodeBudget bounds the decision diagram built to simplify each
// expression.
func WithNodeBudget(n int) Option {
	return func(c *Compiler) error {
		if n <= 0 {
			return configurationError("nodeBudget", "must be positive, got %d", n)
		}
		c.budget = n
		return nil
	}
}

// WithWorkers bounds the number of expressions lowered concurrently.
func WithWorkers(n int) Option {
	return func(c *Compiler) error {
		if n <= 0 {
			return configurationError("workers", "must be positive, got %d", n)
		}
		c.workers = n
		return nil
	}
}

func WithDisjunction(d Disjunction) Option {
	return func(c *Compiler) error {
		if _, err := ParseDisjunction(string(d)); err != nil {
			return err
		}
		c.disjunction = d
		return nil
	}
}

var defaults = []Option{
	func(c *Compiler) error {
		if c.scheme == nil {
			return WithLattice(lattice.Square)(c)
		}
		return nil
	},
	func(c *Compiler) error {
		if c.logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			c.logger = l
		}
		return nil
	},
	func(c *Compiler) error {
		if c.budget == 0 {
			c.budget = boolexpr.DefaultNodeBudget
		}
		return nil
	},
	func(c *Compiler) error {
		if c.workers == 0 {
			c.workers = runtime.GOMAXPROCS(0)
		}
		return nil
	},
	func(c *Compiler) error {
		if c.disjunction == "" {
			c.disjunction = Sum
		}
		return nil
	},
}
