package fold

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/latticefold/latticefold/pkg/assemble"
	"github.com/latticefold/latticefold/pkg/sat"
)

func newProbeCmd() *cobra.Command {
	var (
		flags   runFlags
		count   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Search for a valid conformation with a SAT solver",
		Long: `The probe command compiles a sequence, then asks a SAT solver for a
        self-avoiding walk making as many favourable contacts as it can.
        It checks that the constraints admit a conformation before the
        objective is handed to an annealer.

        $ latticefold probe -s GAKAAGA -l 6 --count
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.config(cmd.Flags())
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			if timeout > 0 {
				var cancel func()
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			r, err := compile(ctx, c)
			if err != nil {
				return err
			}
			solver, err := sat.New(
				sat.WithInput(r.Problem()),
				sat.WithTracer(sat.LogrusTracer{Logger: log.StandardLogger()}),
			)
			if err != nil {
				return err
			}
			solution, err := bestEffort(solver.Solve(ctx))
			if err != nil {
				return err
			}
			in, err := r.Interpret(solution.Assignment)
			if err != nil {
				return err
			}

			out := newConformation(r, in)
			out.Solver = &solverRun{Satisfied: solution.Satisfied, Optimal: solution.Optimal}
			if count {
				n, err := assemble.NewContext(r.Scheme, r.Length).Conformations(c.NodeBudget)
				if err != nil {
					return err
				}
				out.Solver.Conformations = n.String()
			}
			return writeConformation(cmd, out)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&count, "count", false, "count the conformations admitted by the pinned bits")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up the search after this long (0 waits indefinitely)")

	return cmd
}

// bestEffort keeps the best solution found before the search was cut
// short, logging that it may not be optimal.
func bestEffort(solution *sat.Solution, err error) (*sat.Solution, error) {
	if err == sat.Incomplete && solution != nil {
		log.WithField("satisfied", solution.Satisfied).Warn("search stopped early, reporting the best conformation found")
		return solution, nil
	}
	return solution, err
}
