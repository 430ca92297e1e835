package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/latticefold/latticefold/cmd/latticefold/fold"
	"github.com/latticefold/latticefold/pkg/lib/signals"
	"github.com/latticefold/latticefold/pkg/metrics"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "latticefold",
		Short: "latticefold",
		Long:  `A compiler from lattice protein folding problems to quadratic binary objectives.`,

		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if dump, _ := cmd.Flags().GetBool("metrics"); dump {
				return dumpMetrics()
			}
			return nil
		},
	}

	rootCmd.AddCommand(fold.NewCmds()...)

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("metrics", false, "write the compiler metrics to stderr on exit")
	if err := rootCmd.PersistentFlags().MarkHidden("metrics"); err != nil {
		log.Panic(err.Error())
	}

	metrics.RegisterCompiler()

	ctx, stop := signals.Context(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func dumpMetrics() error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
			return err
		}
	}
	return nil
}
