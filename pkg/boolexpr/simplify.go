package boolexpr

import (
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"
)

// DefaultNodeBudget bounds the size of the decision diagram built by a
// Simplifier when no budget is configured.
const DefaultNodeBudget = 1 << 20

// Identifiers of the two terminal decisions.
const (
	FalseID = 0
	TrueID  = 1
)

// IncompleteError reports that an expression could not be brought to
// canonical form within the configured node budget. Callers may still
// lower the original expression by other means.
type IncompleteError struct {
	Budget int
	Reason string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("simplification incomplete (node budget %d): %s", e.Budget, e.Reason)
}

// Simplifier computes canonical forms of expressions over the variables
// [0, Vars).
type Simplifier struct {
	// Vars is the size of the variable universe. Zero sizes the universe
	// to the largest variable mentioned by the expression.
	Vars int
	// NodeBudget caps the number of decision nodes; zero selects
	// DefaultNodeBudget.
	NodeBudget int
}

// Decision is an internal node of a reduced ordered decision diagram:
// the function equals Low when Var is false and High when it is true.
type Decision struct {
	Var       Var
	Low, High int
}

// Canonical is the reduced ordered decision diagram of a boolean function,
// with variables tested in ascending order. Two expressions denote the same
// function exactly when their canonical forms have identical tables.
type Canonical struct {
	vars  int
	root  int
	nodes map[int]Decision
	order []int
	count *big.Int
}

// Canonical builds the decision diagram of e. It returns an
// *IncompleteError when the node budget is exhausted.
func (s Simplifier) Canonical(e *Expr) (c *Canonical, err error) {
	budget := s.NodeBudget
	if budget <= 0 {
		budget = DefaultNodeBudget
	}
	vars := s.Vars
	support := Support(e)
	if n := len(support); n > 0 && int(support[n-1]) >= vars {
		if s.Vars > 0 {
			return nil, fmt.Errorf("variable %d outside of universe [0, %d)", support[n-1], s.Vars)
		}
		vars = int(support[n-1]) + 1
	}
	if vars == 0 {
		vars = 1
	}
	initial := budget
	if initial > 10000 {
		initial = 10000
	}
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, &IncompleteError{Budget: budget, Reason: fmt.Sprint(r)}
		}
	}()
	bdd, err := rudd.New(vars, rudd.Nodesize(initial), rudd.Maxnodesize(budget), rudd.Cachesize(initial))
	if err != nil {
		return nil, &IncompleteError{Budget: budget, Reason: err.Error()}
	}

	memo := make(map[*Expr]rudd.Node)
	var build func(*Expr) (rudd.Node, error)
	build = func(n *Expr) (rudd.Node, error) {
		if r, ok := memo[n]; ok {
			return r, nil
		}
		var r rudd.Node
		switch n.kind {
		case KindConst:
			r = bdd.From(n.value)
		case KindVar:
			r = bdd.Ithvar(int(n.v))
		case KindNot:
			x, err := build(n.x)
			if err != nil {
				return nil, err
			}
			r = bdd.Not(x)
		default:
			x, err := build(n.x)
			if err != nil {
				return nil, err
			}
			y, err := build(n.y)
			if err != nil {
				return nil, err
			}
			switch n.kind {
			case KindAnd:
				r = bdd.And(x, y)
			case KindOr:
				r = bdd.Or(x, y)
			case KindXnor:
				r = bdd.Equiv(x, y)
			}
		}
		if r == nil || bdd.Error() != "" {
			return nil, &IncompleteError{Budget: budget, Reason: bdd.Error()}
		}
		memo[n] = r
		return r, nil
	}
	root, err := build(e)
	if err != nil {
		return nil, err
	}

	c = &Canonical{
		vars:  vars,
		root:  *root,
		nodes: make(map[int]Decision),
	}
	if err := bdd.Allnodes(func(id, level, low, high int) error {
		if id > TrueID {
			c.nodes[id] = Decision{Var: Var(level), Low: low, High: high}
		}
		return nil
	}, root); err != nil {
		return nil, &IncompleteError{Budget: budget, Reason: err.Error()}
	}
	if len(c.nodes) > budget {
		return nil, &IncompleteError{Budget: budget, Reason: fmt.Sprintf("diagram has %d nodes", len(c.nodes))}
	}
	c.count = bdd.Satcount(root)
	c.order = c.topological()
	return c, nil
}

// topological lists decision ids so that every node follows its children.
func (c *Canonical) topological() []int {
	var order []int
	seen := make(map[int]bool)
	var walk func(id int)
	walk = func(id int) {
		if id <= TrueID || seen[id] {
			return
		}
		seen[id] = true
		d := c.nodes[id]
		walk(d.Low)
		walk(d.High)
		order = append(order, id)
	}
	walk(c.root)
	return order
}

// Root returns the id of the top decision, or one of FalseID and TrueID
// for constant functions.
func (c *Canonical) Root() int { return c.root }

// IsFalse reports whether the function is unsatisfiable.
func (c *Canonical) IsFalse() bool { return c.root == FalseID }

// IsTrue reports whether the function is a tautology.
func (c *Canonical) IsTrue() bool { return c.root == TrueID }

// Decision returns the internal node with the given id.
func (c *Canonical) Decision(id int) (Decision, bool) {
	d, ok := c.nodes[id]
	return d, ok
}

// Order returns the ids of all internal nodes, children before parents.
func (c *Canonical) Order() []int {
	return append([]int(nil), c.order...)
}

// Size returns the number of internal nodes.
func (c *Canonical) Size() int { return len(c.nodes) }

// Vars returns the size of the variable universe.
func (c *Canonical) Vars() int { return c.vars }

// SatCount returns the number of satisfying assignments over the whole
// variable universe.
func (c *Canonical) SatCount() *big.Int {
	return new(big.Int).Set(c.count)
}

// Equivalent reports whether c and o denote the same function.
func (c *Canonical) Equivalent(o *Canonical) bool {
	var same func(a, b int) bool
	same = func(a, b int) bool {
		if a <= TrueID || b <= TrueID {
			return a == b
		}
		da, db := c.nodes[a], o.nodes[b]
		return da.Var == db.Var && same(da.Low, db.Low) && same(da.High, db.High)
	}
	return same(c.root, o.root)
}

// Eval computes the function under value.
func (c *Canonical) Eval(value func(Var) bool) bool {
	id := c.root
	for id > TrueID {
		d := c.nodes[id]
		if value(d.Var) {
			id = d.High
		} else {
			id = d.Low
		}
	}
	return id == TrueID
}

// Expr rebuilds an if-then-else expression from the diagram.
func (c *Canonical) Expr() *Expr {
	memo := map[int]*Expr{FalseID: exprFalse, TrueID: exprTrue}
	for _, id := range c.order {
		d := c.nodes[id]
		x := Variable(d.Var)
		memo[id] = Or(And(x, memo[d.High]), And(Not(x), memo[d.Low]))
	}
	return Fold(memo[c.root])
}

// DNF returns a disjunction of pairwise disjoint cubes equivalent to c.
// Cubes are read off the root-to-true paths and then merged whenever two of
// them differ only in the polarity of a single variable.
func (c *Canonical) DNF() DNF {
	var cubes []Cube
	var path Cube
	var walk func(id int)
	walk = func(id int) {
		switch id {
		case FalseID:
			return
		case TrueID:
			cubes = append(cubes, append(Cube(nil), path...))
			return
		}
		d := c.nodes[id]
		path = append(path, Literal{Var: d.Var, Negated: true})
		walk(d.Low)
		path[len(path)-1].Negated = false
		walk(d.High)
		path = path[:len(path)-1]
	}
	walk(c.root)
	return mergeCubes(cubes)
}

// ToDNF is a convenience wrapper building the canonical form of e and
// rendering it as a DNF.
func (s Simplifier) ToDNF(e *Expr) (DNF, error) {
	c, err := s.Canonical(e)
	if err != nil {
		return nil, err
	}
	return c.DNF(), nil
}
