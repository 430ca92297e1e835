package qubo

import (
	"github.com/latticefold/latticefold/pkg/boolexpr"
	"github.com/latticefold/latticefold/pkg/poly"
)

// Expand converts e to the multilinear polynomial that equals one exactly
// when e holds, using the ring identities
//
//	~x      = 1 - x
//	x & y   = x*y
//	x | y   = x + y - x*y
//	x == y  = 1 - x - y + 2*x*y
//
// Each shared subexpression is expanded once.
func Expand(e *boolexpr.Expr) *poly.Polynomial {
	memo := make(map[*boolexpr.Expr]*poly.Polynomial)
	var expand func(*boolexpr.Expr) *poly.Polynomial
	expand = func(n *boolexpr.Expr) *poly.Polynomial {
		if p, ok := memo[n]; ok {
			return p
		}
		var p *poly.Polynomial
		x, y := n.Operands()
		switch n.Kind() {
		case boolexpr.KindConst:
			if n.Value() {
				p = poly.Constant(1)
			} else {
				p = poly.New()
			}
		case boolexpr.KindVar:
			p = poly.Variable(n.Var())
		case boolexpr.KindNot:
			p = poly.Constant(1).Add(expand(x), -1)
		case boolexpr.KindAnd:
			p = poly.Mul(expand(x), expand(y))
		case boolexpr.KindOr:
			px, py := expand(x), expand(y)
			p = poly.Sum(px, py).Add(poly.Mul(px, py), -1)
		case boolexpr.KindXnor:
			px, py := expand(x), expand(y)
			p = poly.Constant(1).Add(px, -1).Add(py, -1).Add(poly.Mul(px, py), 2)
		}
		memo[n] = p
		return p
	}
	return expand(e)
}

// ExpandCanonical converts a decision diagram to its multilinear
// polynomial. Each decision on x between low and high contributes
// low + x*(high - low); variables strictly increase along every path, so
// the products never repeat a factor.
func ExpandCanonical(c *boolexpr.Canonical) *poly.Polynomial {
	memo := map[int]*poly.Polynomial{
		boolexpr.FalseID: poly.New(),
		boolexpr.TrueID:  poly.Constant(1),
	}
	for _, id := range c.Order() {
		d, _ := c.Decision(id)
		low, high := memo[d.Low], memo[d.High]
		diff := high.Clone().Add(low, -1)
		memo[id] = low.Clone().Add(poly.Mul(poly.Variable(d.Var), diff), 1)
	}
	return memo[c.Root()].Clone()
}
