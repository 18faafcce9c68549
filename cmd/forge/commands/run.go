package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the master engine: recover, decide reuse, coordinate workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			noReuse, _ := cmd.Flags().GetBool("no-reuse")

			return c.app.Run(cmd.Context(), app.RunOptions{
				JSON:    jsonOutput,
				NoReuse: noReuse,
			})
		},
	}
	cmd.Flags().Bool("json", false, "Emit logs as JSON")
	cmd.Flags().BoolP("no-reuse", "n", false, "Bypass the reuse decision and force full re-evaluation")
	return cmd
}
