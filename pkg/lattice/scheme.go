// Package lattice describes the lattices a chain can be folded on: how a
// step is encoded in bits, how each encoded step moves the chain along the
// lattice axes, and which displacements make two residues neighbours.
package lattice

import (
	"fmt"
	"sort"

	"github.com/latticefold/latticefold/pkg/boolexpr"
)

// Arity is the coordination number of a lattice, the number of moves
// available from any site.
type Arity int

const (
	Square     Arity = 4
	Cubic      Arity = 6
	Triangular Arity = 8
	FCC        Arity = 12
)

// UnsupportedArityError is returned when no scheme exists for an arity.
type UnsupportedArityError Arity

func (e UnsupportedArityError) Error() string {
	return fmt.Sprintf("unsupported lattice arity %d (supported: 4, 6, 8, 12)", int(e))
}

// Vector is a displacement or position in integer lattice coordinates.
type Vector [3]int

func (v Vector) Add(o Vector) Vector {
	return Vector{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vector) Neg() Vector {
	return Vector{-v[0], -v[1], -v[2]}
}

// Bits are the expressions standing for the bits of one step, in encoding
// order.
type Bits []*boolexpr.Expr

// Predicate maps the bits of a step to an expression that holds when the
// step has some property.
type Predicate func(Bits) *boolexpr.Expr

// Direction is a named predicate contributing one unit along an axis each
// time it holds. Moves of length two along an axis hold two directions.
type Direction struct {
	Name  string
	Holds Predicate
}

// Axis groups the directions counting positive and negative displacement
// along one coordinate.
type Axis struct {
	Name  string
	Plus  []Direction
	Minus []Direction
}

// Move is one valid step encoding.
type Move struct {
	Name  string
	Code  string
	Delta Vector
}

// Pin fixes one bit of the encoding to break the symmetry of the lattice.
type Pin struct {
	Step, Bit int
	Value     bool
}

// Scheme is the complete description of a lattice encoding.
type Scheme struct {
	Arity Arity
	Name  string
	// BitsPerStep is the number of boolean variables encoding one step.
	BitsPerStep int
	Axes        []Axis
	Moves       []Move
	// Invalid lists bit patterns, with x as a wildcard, that encode no
	// move.
	Invalid []string
	Pins    []Pin
	// Rules lists the neighbour offsets as per-axis magnitudes; a residue
	// pair is adjacent when its displacement matches some rule, each
	// non-zero magnitude taken with either sign.
	Rules [][]int
	// Bipartite lattices only bring residues of opposite parity into
	// contact.
	Bipartite bool
	// ContactSeparation is the smallest index separation for which two
	// residues can be lattice neighbours without being chain neighbours.
	ContactSeparation int
}

var schemes = map[Arity]*Scheme{}

func register(s *Scheme) {
	schemes[s.Arity] = s
}

// ForArity returns the scheme of the lattice with the given arity.
func ForArity(a Arity) (*Scheme, error) {
	s, ok := schemes[a]
	if !ok {
		return nil, UnsupportedArityError(a)
	}
	return s, nil
}

// Arities lists the supported arities in ascending order.
func Arities() []Arity {
	out := make([]Arity, 0, len(schemes))
	for a := range schemes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Steps returns the number of steps of a chain of n residues.
func Steps(n int) int {
	if n < 1 {
		return 0
	}
	return n - 1
}

// Var returns the variable encoding bit of step t.
func (s *Scheme) Var(t, bit int) boolexpr.Var {
	return boolexpr.Var(t*s.BitsPerStep + bit)
}

// VarCount returns the number of step variables of a chain of n residues.
func (s *Scheme) VarCount(n int) int {
	return Steps(n) * s.BitsPerStep
}

// VarName renders a step variable as q_<step><bit letter>.
func (s *Scheme) VarName(v boolexpr.Var) string {
	t, bit := int(v)/s.BitsPerStep, int(v)%s.BitsPerStep
	return fmt.Sprintf("q_%d%c", t, 'a'+bit)
}

// Fixed returns the values of the pinned variables that exist in a chain
// of n residues.
func (s *Scheme) Fixed(n int) boolexpr.Assignment {
	out := make(boolexpr.Assignment)
	for _, p := range s.Pins {
		if p.Step < Steps(n) {
			out[s.Var(p.Step, p.Bit)] = p.Value
		}
	}
	return out
}

// FreeVars lists the step variables of a chain of n residues that are not
// pinned, in ascending order.
func (s *Scheme) FreeVars(n int) []boolexpr.Var {
	fixed := s.Fixed(n)
	var out []boolexpr.Var
	for v := 0; v < s.VarCount(n); v++ {
		if _, ok := fixed[boolexpr.Var(v)]; !ok {
			out = append(out, boolexpr.Var(v))
		}
	}
	return out
}

// Pattern returns a predicate holding exactly when the step bits match p,
// where p has one character per bit: 0, 1, or x for either.
func Pattern(p string) Predicate {
	return func(bits Bits) *boolexpr.Expr {
		var lits []*boolexpr.Expr
		for i := 0; i < len(p); i++ {
			switch p[i] {
			case '0':
				lits = append(lits, boolexpr.Not(bits[i]))
			case '1':
				lits = append(lits, bits[i])
			}
		}
		return boolexpr.Ands(lits...)
	}
}

// Any returns a predicate holding when any of ps holds.
func Any(ps ...Predicate) Predicate {
	return func(bits Bits) *boolexpr.Expr {
		es := make([]*boolexpr.Expr, len(ps))
		for i, p := range ps {
			es[i] = p(bits)
		}
		return boolexpr.Ors(es...)
	}
}

// Patterns returns a predicate holding when the bits match any of codes.
func Patterns(codes ...string) Predicate {
	ps := make([]Predicate, len(codes))
	for i, c := range codes {
		ps[i] = Pattern(c)
	}
	return Any(ps...)
}

// Matches reports whether code, a string of 0 and 1, matches pattern.
func Matches(pattern, code string) bool {
	if len(pattern) != len(code) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != 'x' && pattern[i] != code[i] {
			return false
		}
	}
	return true
}

// Move returns the move encoded by code.
func (s *Scheme) Move(code string) (Move, bool) {
	for _, m := range s.Moves {
		if m.Code == code {
			return m, true
		}
	}
	return Move{}, false
}

// Reverse returns the move undoing m.
func (s *Scheme) Reverse(m Move) (Move, bool) {
	for _, r := range s.Moves {
		if r.Delta == m.Delta.Neg() {
			return r, true
		}
	}
	return Move{}, false
}

// Neighbours lists every displacement matching an adjacency rule.
func (s *Scheme) Neighbours() []Vector {
	seen := make(map[Vector]bool)
	var out []Vector
	for _, rule := range s.Rules {
		for _, v := range signs(rule) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Adjacent reports whether two positions are lattice neighbours.
func (s *Scheme) Adjacent(p, q Vector) bool {
	d := p.Sub(q)
	for _, rule := range s.Rules {
		ok := true
		for i, m := range rule {
			if d[i] != m && d[i] != -m {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func signs(rule []int) []Vector {
	out := []Vector{{}}
	for i, m := range rule {
		if m == 0 {
			continue
		}
		var next []Vector
		for _, v := range out {
			plus, minus := v, v
			plus[i], minus[i] = m, -m
			next = append(next, plus, minus)
		}
		out = next
	}
	return out
}

// OverlapPairs lists the residue pairs i < j of a chain of n residues that
// could occupy the same site. Only separations of at least two are listed;
// chain neighbours can never coincide since every move has a non-zero
// displacement. On bipartite lattices odd separations are skipped.
func (s *Scheme) OverlapPairs(n int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if s.Bipartite && (j-i)%2 == 1 {
				continue
			}
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

// ContactPairs lists the residue pairs i < j of a chain of n residues that
// could become non-bonded lattice neighbours.
func (s *Scheme) ContactPairs(n int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := i + s.ContactSeparation; j < n; j++ {
			if s.Bipartite && (j-i)%2 == 0 {
				continue
			}
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

func (s *Scheme) String() string {
	return s.Name
}
