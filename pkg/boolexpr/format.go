package boolexpr

import (
	"fmt"
	"strings"
)

// Namer renders a variable for display.
type Namer func(Var) string

// DefaultNamer renders variables as x0, x1, ...
func DefaultNamer(v Var) string {
	return fmt.Sprintf("x%d", v)
}

func (e *Expr) String() string {
	return Format(e, DefaultNamer)
}

// Format renders e as an infix formula. Shared subexpressions are printed
// at every occurrence, so the output of large adder networks grows quickly;
// prefer rendering a DNF for anything but small expressions.
func Format(e *Expr, name Namer) string {
	var sb strings.Builder
	format(&sb, e, name)
	return sb.String()
}

func format(sb *strings.Builder, e *Expr, name Namer) {
	switch e.kind {
	case KindConst:
		if e.value {
			sb.WriteString("1")
		} else {
			sb.WriteString("0")
		}
	case KindVar:
		sb.WriteString(name(e.v))
	case KindNot:
		sb.WriteString("~")
		format(sb, e.x, name)
	default:
		sb.WriteString("(")
		format(sb, e.x, name)
		switch e.kind {
		case KindAnd:
			sb.WriteString(" & ")
		case KindOr:
			sb.WriteString(" | ")
		case KindXnor:
			sb.WriteString(" == ")
		}
		format(sb, e.y, name)
		sb.WriteString(")")
	}
}
