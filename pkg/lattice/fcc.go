package lattice

// Four bits a, b, c, d per step on the face-centred cubic lattice. Every
// move changes exactly two coordinates by one:
//
//	1011 NE  (1, 1, 0)   0111 UN  (0, 1, 1)   1001 UE  (1, 0, 1)
//	1111 NW  (-1, 1, 0)  0101 US  (0, -1, 1)  1101 UW  (-1, 0, 1)
//	1010 SE  (1, -1, 0)  0110 DN  (0, 1, -1)  1000 DE  (1, 0, -1)
//	1110 SW  (-1, -1, 0) 0100 DS  (0, -1, -1) 1100 DW  (-1, 0, -1)
//
// Patterns starting with 00 encode nothing.
func init() {
	register(&Scheme{
		Arity:       FCC,
		Name:        "fcc",
		BitsPerStep: 4,
		Axes: []Axis{
			{
				Name:  "x",
				Plus:  []Direction{{Name: "x+", Holds: Pattern("10xx")}},
				Minus: []Direction{{Name: "x-", Holds: Pattern("11xx")}},
			},
			{
				Name:  "y",
				Plus:  []Direction{{Name: "y+", Holds: Patterns("1x11", "011x")}},
				Minus: []Direction{{Name: "y-", Holds: Patterns("1x10", "010x")}},
			},
			{
				Name:  "z",
				Plus:  []Direction{{Name: "z+", Holds: Patterns("1x01", "01x1")}},
				Minus: []Direction{{Name: "z-", Holds: Patterns("1x00", "01x0")}},
			},
		},
		Moves: []Move{
			{Name: "NE", Code: "1011", Delta: Vector{1, 1, 0}},
			{Name: "NW", Code: "1111", Delta: Vector{-1, 1, 0}},
			{Name: "SE", Code: "1010", Delta: Vector{1, -1, 0}},
			{Name: "SW", Code: "1110", Delta: Vector{-1, -1, 0}},
			{Name: "UN", Code: "0111", Delta: Vector{0, 1, 1}},
			{Name: "US", Code: "0101", Delta: Vector{0, -1, 1}},
			{Name: "DN", Code: "0110", Delta: Vector{0, 1, -1}},
			{Name: "DS", Code: "0100", Delta: Vector{0, -1, -1}},
			{Name: "UE", Code: "1001", Delta: Vector{1, 0, 1}},
			{Name: "UW", Code: "1101", Delta: Vector{-1, 0, 1}},
			{Name: "DE", Code: "1000", Delta: Vector{1, 0, -1}},
			{Name: "DW", Code: "1100", Delta: Vector{-1, 0, -1}},
		},
		Invalid: []string{"00xx"},
		// North-east first, then one of the four in-plane or upward moves
		// matching 1xx1.
		Pins: []Pin{
			{Step: 0, Bit: 0, Value: true},
			{Step: 0, Bit: 1, Value: false},
			{Step: 0, Bit: 2, Value: true},
			{Step: 0, Bit: 3, Value: true},
			{Step: 1, Bit: 0, Value: true},
			{Step: 1, Bit: 3, Value: true},
		},
		Rules: [][]int{
			{0, 1, 1},
			{1, 0, 1},
			{1, 1, 0},
		},
		ContactSeparation: 2,
	})
}
