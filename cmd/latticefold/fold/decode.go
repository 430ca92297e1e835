package fold

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/latticefold/latticefold/pkg/qubo"
)

func newDecodeCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "decode BITS",
		Short: "Decode a sample of the objective's variables",
		Long: `The decode command compiles a sequence and interprets a sample given in
        the order of the compiled variables. Ancillary bits may be omitted.

        $ latticefold decode -s GAAA 0110
        `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits, err := parseBits(args[0])
			if err != nil {
				return err
			}
			c, err := flags.config(cmd.Flags())
			if err != nil {
				return err
			}
			r, err := compile(commandContext(cmd), c)
			if err != nil {
				return err
			}
			in, err := r.Sample(bits)
			if err != nil {
				return err
			}
			return writeConformation(cmd, newConformation(r, in))
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

// parseBits reads a string of 0 and 1, ignoring separators.
func parseBits(s string) ([]bool, error) {
	var out []bool
	for i, r := range s {
		switch r {
		case '0':
			out = append(out, false)
		case '1':
			out = append(out, true)
		case ' ', ',', '_':
		default:
			return nil, errors.Errorf("bit %d: unexpected %q", i, r)
		}
	}
	return out, nil
}

// Conformation is the rendition of an interpreted sample.
type Conformation struct {
	Valid      bool       `yaml:"valid"`
	Energy     float64    `yaml:"energy"`
	Objective  float64    `yaml:"objective"`
	Bits       string     `yaml:"bits"`
	Positions  [][3]int   `yaml:"positions,omitempty,flow"`
	Contacts   [][2]int   `yaml:"contacts,omitempty,flow"`
	Violations []string   `yaml:"violations,omitempty"`
	Solver     *solverRun `yaml:"solver,omitempty"`
}

type solverRun struct {
	Satisfied     int    `yaml:"satisfied"`
	Optimal       bool   `yaml:"optimal"`
	Conformations string `yaml:"conformations,omitempty"`
}

func newConformation(r *qubo.Result, in *qubo.Interpretation) *Conformation {
	c := &Conformation{
		Valid:      in.Valid(),
		Energy:     in.Energy,
		Objective:  in.Objective,
		Contacts:   in.Contacts,
		Violations: in.Violations,
	}
	var sb strings.Builder
	for _, v := range r.Vars() {
		if in.Assignment[v] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	c.Bits = sb.String()
	for _, p := range in.Positions {
		c.Positions = append(c.Positions, [3]int(p))
	}
	return c
}

func writeConformation(cmd *cobra.Command, c *Conformation) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding conformation")
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
