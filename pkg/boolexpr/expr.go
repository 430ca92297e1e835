// Package boolexpr implements immutable boolean expression DAGs over
// integer-indexed variables, together with the partial evaluation,
// canonical simplification and disjunctive normal form rendering used to
// lower lattice constraints into polynomials.
package boolexpr

import "fmt"

// Var identifies a boolean unknown.
type Var int

// Kind discriminates the node types of an Expr.
type Kind uint8

const (
	KindConst Kind = iota
	KindVar
	KindNot
	KindAnd
	KindOr
	KindXnor
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindVar:
		return "var"
	case KindNot:
		return "not"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindXnor:
		return "xnor"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Expr is a node of a boolean expression. Expressions are never mutated
// after construction, so subexpressions may be shared freely between
// parents and goroutines.
type Expr struct {
	kind  Kind
	value bool
	v     Var
	x, y  *Expr
}

var (
	exprTrue  = &Expr{kind: KindConst, value: true}
	exprFalse = &Expr{kind: KindConst}
)

// True returns the constant true expression.
func True() *Expr { return exprTrue }

// False returns the constant false expression.
func False() *Expr { return exprFalse }

// Const returns the constant expression for b.
func Const(b bool) *Expr {
	if b {
		return exprTrue
	}
	return exprFalse
}

// Variable returns a leaf referring to v.
func Variable(v Var) *Expr {
	return &Expr{kind: KindVar, v: v}
}

// Not returns the negation of e.
func Not(e *Expr) *Expr {
	return &Expr{kind: KindNot, x: e}
}

// And returns the conjunction of x and y.
func And(x, y *Expr) *Expr {
	return &Expr{kind: KindAnd, x: x, y: y}
}

// Or returns the disjunction of x and y.
func Or(x, y *Expr) *Expr {
	return &Expr{kind: KindOr, x: x, y: y}
}

// Xnor returns an expression that holds when x and y agree.
func Xnor(x, y *Expr) *Expr {
	return &Expr{kind: KindXnor, x: x, y: y}
}

// Xor returns an expression that holds when x and y differ.
func Xor(x, y *Expr) *Expr {
	return Not(Xnor(x, y))
}

// Ands folds es into a balanced conjunction. The conjunction of nothing is
// true.
func Ands(es ...*Expr) *Expr {
	return balanced(es, And, exprTrue)
}

// Ors folds es into a balanced disjunction. The disjunction of nothing is
// false.
func Ors(es ...*Expr) *Expr {
	return balanced(es, Or, exprFalse)
}

func balanced(es []*Expr, op func(x, y *Expr) *Expr, empty *Expr) *Expr {
	switch len(es) {
	case 0:
		return empty
	case 1:
		return es[0]
	}
	mid := len(es) / 2
	return op(balanced(es[:mid], op, empty), balanced(es[mid:], op, empty))
}

// Kind reports the node type of e.
func (e *Expr) Kind() Kind { return e.kind }

// Value reports the value of a constant node.
func (e *Expr) Value() bool { return e.value }

// Var reports the variable of a leaf node.
func (e *Expr) Var() Var { return e.v }

// Operands returns the children of e. The second operand is nil for
// negations and both are nil for leaves.
func (e *Expr) Operands() (*Expr, *Expr) { return e.x, e.y }

// IsConst reports whether e is the constant b.
func (e *Expr) IsConst(b bool) bool {
	return e.kind == KindConst && e.value == b
}

// Equal reports whether a and b are structurally identical. Shared
// subexpressions are compared once.
func Equal(a, b *Expr) bool {
	type pair struct{ a, b *Expr }
	seen := make(map[pair]bool)
	var eq func(a, b *Expr) bool
	eq = func(a, b *Expr) bool {
		if a == b {
			return true
		}
		if a == nil || b == nil || a.kind != b.kind {
			return false
		}
		if r, ok := seen[pair{a, b}]; ok {
			return r
		}
		var r bool
		switch a.kind {
		case KindConst:
			r = a.value == b.value
		case KindVar:
			r = a.v == b.v
		case KindNot:
			r = eq(a.x, b.x)
		default:
			r = eq(a.x, b.x) && eq(a.y, b.y)
		}
		seen[pair{a, b}] = r
		return r
	}
	return eq(a, b)
}

// Support returns the variables e depends on syntactically, in ascending
// order.
func Support(e *Expr) []Var {
	vars := make(map[Var]struct{})
	visit(e, func(n *Expr) {
		if n.kind == KindVar {
			vars[n.v] = struct{}{}
		}
	})
	out := make([]Var, 0, len(vars))
	for v := range vars {
		out = append(out, v)
	}
	sortVars(out)
	return out
}

// Size counts the distinct nodes reachable from e.
func Size(e *Expr) int {
	n := 0
	visit(e, func(*Expr) { n++ })
	return n
}

// visit calls f once per distinct node, children first.
func visit(e *Expr, f func(*Expr)) {
	seen := make(map[*Expr]struct{})
	var walk func(*Expr)
	walk = func(n *Expr) {
		if n == nil {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		walk(n.x)
		walk(n.y)
		f(n)
	}
	walk(e)
}
