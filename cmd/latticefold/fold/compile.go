package fold

import (
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var (
		flags  runFlags
		mode   string
		output string
		ising  bool
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a sequence into a quadratic objective",
		Long: `The compile command lowers the folding problem of a sequence on a lattice
        into a quadratic binary objective whose minima are the lowest energy
        self-avoiding conformations.

        $ latticefold compile -s GAAAA -l 4
        $ latticefold compile -c run.yaml --mode formula -o yaml
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMode(mode)
			if err != nil {
				return err
			}
			return runCompile(cmd, &flags, m, output, ising)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&mode, "mode", string(PolynomialMode), "what to print: formula or polynomial")
	cmd.Flags().StringVarP(&output, "output", "o", string(TextFormat), "output format: text or yaml")
	cmd.Flags().BoolVar(&ising, "ising", false, "also print the objective over spins")

	return cmd
}

func newFormulaCmd() *cobra.Command {
	var (
		flags  runFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "formula",
		Short: "Print the boolean formula of every constraint and contact",
		Long: `The formula command compiles a sequence and prints each lowered term as
        a disjunction of cubes over the free step variables.

        $ latticefold formula -s GAAA
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, &flags, FormulaMode, output, false)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", string(TextFormat), "output format: text or yaml")

	return cmd
}

func runCompile(cmd *cobra.Command, flags *runFlags, mode Mode, output string, ising bool) error {
	format, err := parseFormat(output)
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
	d, err := NewDocument(r, mode, ising)
	if err != nil {
		return err
	}
	return Render(cmd.OutOrStdout(), d, format)
}
