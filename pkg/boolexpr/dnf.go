package boolexpr

import (
	"sort"
	"strconv"
	"strings"
)

// Literal is a possibly negated variable.
type Literal struct {
	Var     Var
	Negated bool
}

// Cube is a conjunction of literals over distinct variables, sorted by
// variable. The empty cube is true.
type Cube []Literal

// DNF is a disjunction of cubes. The empty DNF is false.
type DNF []Cube

// Expr converts the cube to an expression.
func (c Cube) Expr() *Expr {
	es := make([]*Expr, len(c))
	for i, l := range c {
		es[i] = Variable(l.Var)
		if l.Negated {
			es[i] = Not(es[i])
		}
	}
	return Ands(es...)
}

// Eval reports whether every literal of c holds.
func (c Cube) Eval(value func(Var) bool) bool {
	for _, l := range c {
		if value(l.Var) == l.Negated {
			return false
		}
	}
	return true
}

// Format renders c as "a & ~b".
func (c Cube) Format(name Namer) string {
	if len(c) == 0 {
		return "1"
	}
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = name(l.Var)
		if l.Negated {
			parts[i] = "~" + parts[i]
		}
	}
	return strings.Join(parts, " & ")
}

// Expr converts the disjunction to an expression.
func (d DNF) Expr() *Expr {
	es := make([]*Expr, len(d))
	for i, c := range d {
		es[i] = c.Expr()
	}
	return Ors(es...)
}

// Eval reports whether some cube of d holds.
func (d DNF) Eval(value func(Var) bool) bool {
	for _, c := range d {
		if c.Eval(value) {
			return true
		}
	}
	return false
}

// Format renders d as "a & ~b | c".
func (d DNF) Format(name Namer) string {
	if len(d) == 0 {
		return "0"
	}
	parts := make([]string, len(d))
	for i, c := range d {
		parts[i] = c.Format(name)
	}
	return strings.Join(parts, " | ")
}

func (d DNF) String() string {
	return d.Format(DefaultNamer)
}

// key encodes c with the polarity of the literal at skip erased.
func (c Cube) key(skip int) string {
	var sb strings.Builder
	for i, l := range c {
		sb.WriteString(strconv.Itoa(int(l.Var)))
		switch {
		case i == skip:
			sb.WriteByte('*')
		case l.Negated:
			sb.WriteByte('-')
		default:
			sb.WriteByte('+')
		}
	}
	return sb.String()
}

func (c Cube) without(i int) Cube {
	out := make(Cube, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}

// mergeCubes repeatedly replaces pairs of cubes that differ only in the
// polarity of one variable with their common part. Merging two disjoint
// cubes this way keeps the result disjoint from every other cube.
func mergeCubes(cubes []Cube) DNF {
	for {
		alive := make([]bool, len(cubes))
		for i := range alive {
			alive[i] = true
		}
		index := make(map[string]int)
		var merged []Cube
		for i, c := range cubes {
			for j := range c {
				k := c.key(j)
				if o, ok := index[k]; ok && alive[o] {
					alive[o], alive[i] = false, false
					merged = append(merged, c.without(j))
					break
				}
				index[k] = i
			}
		}
		if len(merged) == 0 {
			break
		}
		for i, c := range cubes {
			if alive[i] {
				merged = append(merged, c)
			}
		}
		cubes = merged
	}
	sort.SliceStable(cubes, func(i, j int) bool {
		return lessCube(cubes[i], cubes[j])
	})
	return DNF(cubes)
}

func lessCube(a, b Cube) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Var != b[i].Var {
			return a[i].Var < b[i].Var
		}
		if a[i].Negated != b[i].Negated {
			return a[i].Negated
		}
	}
	return len(a) < len(b)
}
