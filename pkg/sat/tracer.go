package sat

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// SearchPosition describes one solver call made while searching.
type SearchPosition interface {
	// Bound is the number of preferences the call required.
	Bound() int
	Satisfiable() bool
	Conflicts() []Requirement
}

type Tracer interface {
	Trace(p SearchPosition)
}

type position struct {
	bound     int
	outcome   int
	conflicts []Requirement
}

func (p position) Bound() int               { return p.bound }
func (p position) Satisfiable() bool        { return p.outcome == satisfiable }
func (p position) Conflicts() []Requirement { return p.conflicts }

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nBound: %d\nSatisfiable: %t\n", p.Bound(), p.Satisfiable())
	if len(p.Conflicts()) == 0 {
		return
	}
	fmt.Fprintf(t.Writer, "Conflicts:\n")
	for _, a := range p.Conflicts() {
		fmt.Fprintf(t.Writer, "- %s\n", a)
	}
}

// LogrusTracer reports search positions at debug level.
type LogrusTracer struct {
	Logger logrus.FieldLogger
}

func (t LogrusTracer) Trace(p SearchPosition) {
	entry := t.Logger.WithFields(logrus.Fields{
		"bound":       p.Bound(),
		"satisfiable": p.Satisfiable(),
	})
	if cs := p.Conflicts(); len(cs) > 0 {
		entry = entry.WithField("conflicts", NotSatisfiable(cs).Error())
	}
	entry.Debug("search position")
}
