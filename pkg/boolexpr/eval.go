package boolexpr

import "sort"

// Assignment maps variables to values. Variables that are absent read as
// false.
type Assignment map[Var]bool

// Value returns the value assigned to v.
func (a Assignment) Value(v Var) bool {
	return a[v]
}

// Eval computes the value of e under value. Each shared node is evaluated
// once.
func (e *Expr) Eval(value func(Var) bool) bool {
	memo := make(map[*Expr]bool)
	var eval func(*Expr) bool
	eval = func(n *Expr) bool {
		switch n.kind {
		case KindConst:
			return n.value
		case KindVar:
			return value(n.v)
		}
		if r, ok := memo[n]; ok {
			return r
		}
		var r bool
		switch n.kind {
		case KindNot:
			r = !eval(n.x)
		case KindAnd:
			r = eval(n.x) && eval(n.y)
		case KindOr:
			r = eval(n.x) || eval(n.y)
		case KindXnor:
			r = eval(n.x) == eval(n.y)
		}
		memo[n] = r
		return r
	}
	return eval(e)
}

// Bits returns an assignment setting vars[i] to bit i of x.
func Bits(vars []Var, x uint64) Assignment {
	a := make(Assignment, len(vars))
	for i, v := range vars {
		a[v] = x&(1<<uint(i)) != 0
	}
	return a
}

func sortVars(vs []Var) {
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
}
