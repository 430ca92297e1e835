package boolexpr

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	a = Variable(0)
	b = Variable(1)
	c = Variable(2)
)

func TestEval(t *testing.T) {
	type tc struct {
		Name  string
		Expr  *Expr
		Truth []bool // indexed by a | b<<1 | c<<2
	}

	for _, tt := range []tc{
		{
			Name:  "and",
			Expr:  And(a, b),
			Truth: []bool{false, false, false, true, false, false, false, true},
		},
		{
			Name:  "or",
			Expr:  Or(a, b),
			Truth: []bool{false, true, true, true, false, true, true, true},
		},
		{
			Name:  "xnor",
			Expr:  Xnor(a, b),
			Truth: []bool{true, false, false, true, true, false, false, true},
		},
		{
			Name:  "xor",
			Expr:  Xor(a, c),
			Truth: []bool{false, true, false, true, true, false, true, false},
		},
		{
			Name:  "not",
			Expr:  Not(c),
			Truth: []bool{true, true, true, true, false, false, false, false},
		},
		{
			Name:  "ands of nothing",
			Expr:  Ands(),
			Truth: []bool{true, true, true, true, true, true, true, true},
		},
		{
			Name:  "ors of nothing",
			Expr:  Ors(),
			Truth: []bool{false, false, false, false, false, false, false, false},
		},
		{
			Name:  "majority",
			Expr:  Ors(And(a, b), And(b, c), And(a, c)),
			Truth: []bool{false, false, false, true, false, true, true, true},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			for x, want := range tt.Truth {
				assert.Equal(t, want, tt.Expr.Eval(Bits([]Var{0, 1, 2}, uint64(x)).Value), "assignment %03b", x)
			}
		})
	}
}

func TestSubstitute(t *testing.T) {
	type tc struct {
		Name   string
		Expr   *Expr
		Values Assignment
		Want   *Expr
	}

	for _, tt := range []tc{
		{
			Name:   "and with false collapses",
			Expr:   And(a, b),
			Values: Assignment{0: false},
			Want:   False(),
		},
		{
			Name:   "and with true keeps other operand",
			Expr:   And(a, b),
			Values: Assignment{0: true},
			Want:   b,
		},
		{
			Name:   "or with true collapses",
			Expr:   Or(a, b),
			Values: Assignment{1: true},
			Want:   True(),
		},
		{
			Name:   "xnor with false negates",
			Expr:   Xnor(a, b),
			Values: Assignment{1: false},
			Want:   Not(a),
		},
		{
			Name:   "xnor of constants",
			Expr:   Xnor(a, b),
			Values: Assignment{0: false, 1: false},
			Want:   True(),
		},
		{
			Name:   "not of constant",
			Expr:   Not(Or(a, c)),
			Values: Assignment{2: true},
			Want:   False(),
		},
		{
			Name:   "unrelated variable",
			Expr:   And(a, b),
			Values: Assignment{2: true},
			Want:   And(a, b),
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.True(t, Equal(tt.Want, SubstituteAll(tt.Expr, tt.Values)), "got %s", SubstituteAll(tt.Expr, tt.Values))
		})
	}
}

func TestSubstitutePreservesSharing(t *testing.T) {
	shared := And(b, c)
	e := Or(And(a, shared), Not(shared))
	out := Substitute(e, 0, true)

	x, y := out.Operands()
	assert.Same(t, shared, x)
	assert.Same(t, shared, func() *Expr { s, _ := y.Operands(); return s }())

	assert.Same(t, shared, Substitute(shared, 0, true))
}

func TestSubstituteAgreesWithEval(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		e := randomExpr(rnd, 5, 6)
		for x := uint64(0); x < 1<<6; x++ {
			values := Bits([]Var{0, 1, 2, 3, 4, 5}, x)
			bound := Assignment{Var(rnd.Intn(6)): values[Var(rnd.Intn(6))]}
			for v, b := range bound {
				values[v] = b
			}
			assert.Equal(t, e.Eval(values.Value), SubstituteAll(e, bound).Eval(values.Value))
		}
	}
}

func TestSupport(t *testing.T) {
	e := Or(And(Variable(7), Variable(3)), Xnor(Variable(3), Not(Variable(1))))
	assert.Equal(t, []Var{1, 3, 7}, Support(e))
	assert.Empty(t, Support(True()))
}

func TestFormat(t *testing.T) {
	e := Or(And(a, Not(b)), Xnor(c, True()))
	assert.Equal(t, "((x0 & ~x1) | (x2 == 1))", e.String())
	require.Equal(t, "q", Format(Variable(9), func(Var) string { return "q" }))
}

// randomExpr builds an expression tree of the given depth over vars
// variables, sharing subtrees at random.
func randomExpr(rnd *rand.Rand, depth, vars int) *Expr {
	var pool []*Expr
	var gen func(d int) *Expr
	gen = func(d int) *Expr {
		if d == 0 || rnd.Intn(5) == 0 {
			if rnd.Intn(10) == 0 {
				return Const(rnd.Intn(2) == 0)
			}
			return Variable(Var(rnd.Intn(vars)))
		}
		if len(pool) > 0 && rnd.Intn(4) == 0 {
			return pool[rnd.Intn(len(pool))]
		}
		var e *Expr
		switch rnd.Intn(4) {
		case 0:
			e = Not(gen(d - 1))
		case 1:
			e = And(gen(d-1), gen(d-1))
		case 2:
			e = Or(gen(d-1), gen(d-1))
		default:
			e = Xnor(gen(d-1), gen(d-1))
		}
		pool = append(pool, e)
		return e
	}
	return gen(depth)
}
