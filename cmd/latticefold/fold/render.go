package fold

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/latticefold/latticefold/pkg/poly"
	"github.com/latticefold/latticefold/pkg/qubo"
)

// Mode selects what compile prints.
type Mode string

const (
	// FormulaMode prints every lowered term as a boolean formula.
	FormulaMode Mode = "formula"
	// PolynomialMode prints the reduced objective.
	PolynomialMode Mode = "polynomial"
)

// Format selects how compile prints it.
type Format string

const (
	TextFormat Format = "text"
	YAMLFormat Format = "yaml"
)

func parseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case FormulaMode, PolynomialMode:
		return m, nil
	}
	return "", errors.Errorf("unknown mode %q, expected formula or polynomial", s)
}

func parseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case TextFormat, YAMLFormat:
		return f, nil
	}
	return "", errors.Errorf("unknown output %q, expected text or yaml", s)
}

type termDocument struct {
	Label   string `yaml:"label"`
	Formula string `yaml:"formula"`
}

type familyDocument struct {
	Family string         `yaml:"family"`
	Terms  []termDocument `yaml:"terms"`
}

type interactionDocument struct {
	I       int     `yaml:"i"`
	J       int     `yaml:"j"`
	Energy  float64 `yaml:"energy"`
	Formula string  `yaml:"formula,omitempty"`
}

type couplingDocument struct {
	U     string  `yaml:"u"`
	V     string  `yaml:"v"`
	Coeff float64 `yaml:"coeff"`
}

type modelDocument struct {
	Offset    float64            `yaml:"offset"`
	Linear    map[string]float64 `yaml:"linear"`
	Quadratic []couplingDocument `yaml:"quadratic"`
}

type ancillaryDocument struct {
	Name         string   `yaml:"name"`
	Factors      []string `yaml:"factors"`
	Inequalities []string `yaml:"inequalities"`
}

// Document is the machine readable rendition of a compile.
type Document struct {
	Lattice      string                `yaml:"lattice"`
	Sequence     string                `yaml:"sequence"`
	Penalty      float64               `yaml:"penalty"`
	Strength     float64               `yaml:"strength"`
	Variables    []string              `yaml:"variables"`
	Constraints  []familyDocument      `yaml:"constraints,omitempty"`
	Interactions []interactionDocument `yaml:"interactions,omitempty"`
	Binary       *modelDocument        `yaml:"binary,omitempty"`
	Ising        *modelDocument        `yaml:"ising,omitempty"`
	Ancillaries  []ancillaryDocument   `yaml:"ancillaries,omitempty"`
	Diagnostics  []string              `yaml:"diagnostics,omitempty"`
}

// NewDocument collects the parts of r that mode prints. The Ising view is
// only filled in polynomial mode.
func NewDocument(r *qubo.Result, mode Mode, ising bool) (*Document, error) {
	d := &Document{
		Lattice:  r.Scheme.Name,
		Sequence: r.Sequence,
		Penalty:  r.Penalty,
		Strength: r.Strength,
	}
	for _, v := range r.Vars() {
		d.Variables = append(d.Variables, r.Name(v))
	}
	for _, diag := range r.Diagnostics {
		d.Diagnostics = append(d.Diagnostics, diag.String())
	}

	if mode == FormulaMode {
		for _, c := range r.Constraints {
			f := familyDocument{Family: c.Family}
			for _, t := range c.Terms {
				f.Terms = append(f.Terms, termDocument{Label: t.Label, Formula: t.Formula(r.Name)})
			}
			d.Constraints = append(d.Constraints, f)
		}
		for _, in := range r.Interactions {
			d.Interactions = append(d.Interactions, interactionDocument{
				I: in.I, J: in.J, Energy: in.Energy, Formula: in.Term.Formula(r.Name),
			})
		}
		return d, nil
	}

	for _, in := range r.Interactions {
		d.Interactions = append(d.Interactions, interactionDocument{I: in.I, J: in.J, Energy: in.Energy})
	}
	b, err := r.Objective.Binary()
	if err != nil {
		return nil, err
	}
	d.Binary = newModelDocument(r, b)
	if ising {
		s, err := r.Objective.Ising()
		if err != nil {
			return nil, err
		}
		d.Ising = newModelDocument(r, s)
	}
	for _, a := range r.Ancillaries {
		ad := ancillaryDocument{Name: r.Name(a.Var)}
		for _, v := range a.Factors {
			ad.Factors = append(ad.Factors, r.Name(v))
		}
		for _, q := range a.Inequalities() {
			ad.Inequalities = append(ad.Inequalities, q.Format(r.Name))
		}
		d.Ancillaries = append(d.Ancillaries, ad)
	}
	return d, nil
}

func newModelDocument(r *qubo.Result, m poly.Model) *modelDocument {
	d := &modelDocument{Offset: m.Offset, Linear: make(map[string]float64, len(m.Linear))}
	for v, c := range m.Linear {
		if c != 0 {
			d.Linear[r.Name(v)] = c
		}
	}
	pairs := make([]poly.Pair, 0, len(m.Quadratic))
	for p, c := range m.Quadratic {
		if c != 0 {
			pairs = append(pairs, p)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].U != pairs[j].U {
			return pairs[i].U < pairs[j].U
		}
		return pairs[i].V < pairs[j].V
	})
	for _, p := range pairs {
		d.Quadratic = append(d.Quadratic, couplingDocument{U: r.Name(p.U), V: r.Name(p.V), Coeff: m.Quadratic[p]})
	}
	return d
}

// Render writes d to w in the given format.
func Render(w io.Writer, d *Document, format Format) error {
	if format == YAMLFormat {
		data, err := yaml.Marshal(d)
		if err != nil {
			return errors.Wrap(err, "encoding result")
		}
		_, err = w.Write(data)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s lattice, sequence %s, penalty %g, strength %g\n", d.Lattice, d.Sequence, d.Penalty, d.Strength)
	fmt.Fprintf(&sb, "# variables: %s\n", strings.Join(d.Variables, " "))
	for _, c := range d.Constraints {
		for _, t := range c.Terms {
			fmt.Fprintf(&sb, "%s: %s\n", t.Label, t.Formula)
		}
	}
	for _, in := range d.Interactions {
		if in.Formula == "" {
			fmt.Fprintf(&sb, "contact(%d,%d) %g\n", in.I, in.J, in.Energy)
			continue
		}
		fmt.Fprintf(&sb, "contact(%d,%d) %g: %s\n", in.I, in.J, in.Energy, in.Formula)
	}
	if d.Binary != nil {
		sb.WriteString("objective: ")
		writeModel(&sb, d.Binary)
	}
	if d.Ising != nil {
		sb.WriteString("ising: ")
		writeModel(&sb, d.Ising)
	}
	for _, a := range d.Ancillaries {
		fmt.Fprintf(&sb, "%s = %s\n", a.Name, strings.Join(a.Factors, "*"))
		for _, q := range a.Inequalities {
			fmt.Fprintf(&sb, "  %s\n", q)
		}
	}
	for _, diag := range d.Diagnostics {
		fmt.Fprintf(&sb, "# %s\n", diag)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeModel(sb *strings.Builder, m *modelDocument) {
	names := make([]string, 0, len(m.Linear))
	for name := range m.Linear {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := []string{fmt.Sprintf("%g", m.Offset)}
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%g*%s", m.Linear[name], name))
	}
	for _, c := range m.Quadratic {
		parts = append(parts, fmt.Sprintf("%g*%s*%s", c.Coeff, c.U, c.V))
	}
	sb.WriteString(strings.Join(parts, " + "))
	sb.WriteByte('\n')
}
