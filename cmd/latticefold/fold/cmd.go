// Package fold holds the subcommands of the latticefold CLI.
package fold

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticefold/latticefold/pkg/version"
)

// NewCmds returns the subcommands of the latticefold root command.
func NewCmds() []*cobra.Command {
	return []*cobra.Command{
		newCompileCmd(),
		newFormulaCmd(),
		newDecodeCmd(),
		newProbeCmd(),
		newVersionCmd(),
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the latticefold version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
