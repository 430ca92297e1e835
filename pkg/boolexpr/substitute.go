package boolexpr

// Substitute replaces every occurrence of v in e with the constant value
// and folds the constants this creates. Subexpressions that do not mention
// v are returned unchanged, so sharing in e survives the rewrite.
func Substitute(e *Expr, v Var, value bool) *Expr {
	return SubstituteAll(e, Assignment{v: value})
}

// SubstituteAll replaces every variable bound in values with its constant
// and folds the result locally: a constant operand collapses the node it
// feeds, but no further algebraic simplification is attempted.
func SubstituteAll(e *Expr, values Assignment) *Expr {
	memo := make(map[*Expr]*Expr)
	var sub func(*Expr) *Expr
	sub = func(n *Expr) *Expr {
		switch n.kind {
		case KindConst:
			return n
		case KindVar:
			if b, ok := values[n.v]; ok {
				return Const(b)
			}
			return n
		}
		if r, ok := memo[n]; ok {
			return r
		}
		var r *Expr
		switch n.kind {
		case KindNot:
			r = foldNot(n, sub(n.x))
		default:
			r = foldBinary(n, sub(n.x), sub(n.y))
		}
		memo[n] = r
		return r
	}
	return sub(e)
}

// Fold performs constant folding without binding any variable.
func Fold(e *Expr) *Expr {
	return SubstituteAll(e, nil)
}

func foldNot(n, x *Expr) *Expr {
	if x.kind == KindConst {
		return Const(!x.value)
	}
	if x == n.x {
		return n
	}
	return Not(x)
}

func foldBinary(n, x, y *Expr) *Expr {
	switch n.kind {
	case KindAnd:
		switch {
		case x.IsConst(false) || y.IsConst(false):
			return exprFalse
		case x.IsConst(true):
			return y
		case y.IsConst(true):
			return x
		}
	case KindOr:
		switch {
		case x.IsConst(true) || y.IsConst(true):
			return exprTrue
		case x.IsConst(false):
			return y
		case y.IsConst(false):
			return x
		}
	case KindXnor:
		switch {
		case x.kind == KindConst && y.kind == KindConst:
			return Const(x.value == y.value)
		case x.IsConst(true):
			return y
		case y.IsConst(true):
			return x
		case x.IsConst(false):
			return Not(y)
		case y.IsConst(false):
			return Not(x)
		}
	}
	if x == n.x && y == n.y {
		return n
	}
	return &Expr{kind: n.kind, x: x, y: y}
}
