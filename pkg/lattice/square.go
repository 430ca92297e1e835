package lattice

import "github.com/latticefold/latticefold/pkg/boolexpr"

// Two bits a, b per step on the square lattice:
//
//	01 E  10 W  11 N  00 S
func init() {
	register(&Scheme{
		Arity:       Square,
		Name:        "square",
		BitsPerStep: 2,
		Axes: []Axis{
			{
				Name: "x",
				Plus: []Direction{{Name: "x+", Holds: func(q Bits) *boolexpr.Expr {
					return boolexpr.And(boolexpr.Not(q[0]), q[1])
				}}},
				Minus: []Direction{{Name: "x-", Holds: func(q Bits) *boolexpr.Expr {
					return boolexpr.And(q[0], boolexpr.Not(q[1]))
				}}},
			},
			{
				Name: "y",
				Plus: []Direction{{Name: "y+", Holds: func(q Bits) *boolexpr.Expr {
					return boolexpr.And(q[0], q[1])
				}}},
				Minus: []Direction{{Name: "y-", Holds: func(q Bits) *boolexpr.Expr {
					return boolexpr.And(boolexpr.Not(q[0]), boolexpr.Not(q[1]))
				}}},
			},
		},
		Moves: []Move{
			{Name: "E", Code: "01", Delta: Vector{1, 0, 0}},
			{Name: "W", Code: "10", Delta: Vector{-1, 0, 0}},
			{Name: "N", Code: "11", Delta: Vector{0, 1, 0}},
			{Name: "S", Code: "00", Delta: Vector{0, -1, 0}},
		},
		// The first step always heads east.
		Pins: []Pin{
			{Step: 0, Bit: 0, Value: false},
			{Step: 0, Bit: 1, Value: true},
		},
		Rules: [][]int{
			{0, 1},
			{1, 0},
		},
		Bipartite:         true,
		ContactSeparation: 3,
	})
}
