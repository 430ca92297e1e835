package lattice

// Three bits a, b, c per step on the stacked triangular lattice. The plane
// uses doubled y coordinates so that the six in-plane neighbours sit at
// integer offsets; a vertical move changes z only:
//
//	111 N   (0, 2, 0)   000 S   (0, -2, 0)
//	011 NE  (1, 1, 0)   100 SW  (-1, -1, 0)
//	101 NW  (-1, 1, 0)  010 SE  (1, -1, 0)
//	001 U   (0, 0, 1)   110 D   (0, 0, -1)
//
// North and south count twice along y, once through y+ or y- and once more
// through y++ or y--.
func init() {
	register(&Scheme{
		Arity:       Triangular,
		Name:        "triangular",
		BitsPerStep: 3,
		Axes: []Axis{
			{
				Name:  "x",
				Plus:  []Direction{{Name: "x+", Holds: Pattern("01x")}},
				Minus: []Direction{{Name: "x-", Holds: Pattern("10x")}},
			},
			{
				Name: "y",
				Plus: []Direction{
					{Name: "y+", Holds: Patterns("111", "011", "101")},
					{Name: "y++", Holds: Pattern("111")},
				},
				Minus: []Direction{
					{Name: "y-", Holds: Patterns("000", "100", "010")},
					{Name: "y--", Holds: Pattern("000")},
				},
			},
			{
				Name:  "z",
				Plus:  []Direction{{Name: "z+", Holds: Pattern("001")}},
				Minus: []Direction{{Name: "z-", Holds: Pattern("110")}},
			},
		},
		Moves: []Move{
			{Name: "N", Code: "111", Delta: Vector{0, 2, 0}},
			{Name: "S", Code: "000", Delta: Vector{0, -2, 0}},
			{Name: "NE", Code: "011", Delta: Vector{1, 1, 0}},
			{Name: "SW", Code: "100", Delta: Vector{-1, -1, 0}},
			{Name: "NW", Code: "101", Delta: Vector{-1, 1, 0}},
			{Name: "SE", Code: "010", Delta: Vector{1, -1, 0}},
			{Name: "U", Code: "001", Delta: Vector{0, 0, 1}},
			{Name: "D", Code: "110", Delta: Vector{0, 0, -1}},
		},
		// The first step goes south or up.
		Pins: []Pin{
			{Step: 0, Bit: 0, Value: false},
			{Step: 0, Bit: 1, Value: false},
		},
		Rules: [][]int{
			{0, 2, 0},
			{0, 0, 1},
			{1, 1, 0},
		},
		ContactSeparation: 2,
	})
}
