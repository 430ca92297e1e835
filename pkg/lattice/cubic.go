package lattice

// Three bits a, b, c per step on the simple cubic lattice. The first two
// select the axis, the last one the sign:
//
//	000 E  001 W  010 N  011 S  100 U  101 D
//
// Patterns starting with 11 encode nothing.
func init() {
	register(&Scheme{
		Arity:       Cubic,
		Name:        "cubic",
		BitsPerStep: 3,
		Axes: []Axis{
			{
				Name:  "x",
				Plus:  []Direction{{Name: "x+", Holds: Pattern("000")}},
				Minus: []Direction{{Name: "x-", Holds: Pattern("001")}},
			},
			{
				Name:  "y",
				Plus:  []Direction{{Name: "y+", Holds: Pattern("010")}},
				Minus: []Direction{{Name: "y-", Holds: Pattern("011")}},
			},
			{
				Name:  "z",
				Plus:  []Direction{{Name: "z+", Holds: Pattern("100")}},
				Minus: []Direction{{Name: "z-", Holds: Pattern("101")}},
			},
		},
		Moves: []Move{
			{Name: "E", Code: "000", Delta: Vector{1, 0, 0}},
			{Name: "W", Code: "001", Delta: Vector{-1, 0, 0}},
			{Name: "N", Code: "010", Delta: Vector{0, 1, 0}},
			{Name: "S", Code: "011", Delta: Vector{0, -1, 0}},
			{Name: "U", Code: "100", Delta: Vector{0, 0, 1}},
			{Name: "D", Code: "101", Delta: Vector{0, 0, -1}},
		},
		Invalid: []string{"11x"},
		// East first, then east again or up.
		Pins: []Pin{
			{Step: 0, Bit: 0, Value: false},
			{Step: 0, Bit: 1, Value: false},
			{Step: 0, Bit: 2, Value: false},
			{Step: 1, Bit: 1, Value: false},
			{Step: 1, Bit: 2, Value: false},
		},
		Rules: [][]int{
			{0, 0, 1},
			{0, 1, 0},
			{1, 0, 0},
		},
		Bipartite:         true,
		ContactSeparation: 3,
	})
}
