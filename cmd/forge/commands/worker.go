package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
)

func (c *CLI) newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Attach to a master as a build worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workerID, _ := cmd.Flags().GetString("worker-id")
			endpoint, _ := cmd.Flags().GetString("endpoint")
			slots, _ := cmd.Flags().GetInt("slots")

			transport, err := c.transport(cmd.Context())
			if err != nil {
				return err
			}

			return c.app.Worker(cmd.Context(), transport, app.WorkerOptions{
				WorkerID: workerID,
				Endpoint: endpoint,
				Slots:    slots,
			})
		},
	}
	cmd.Flags().String("worker-id", "", "Worker identity (generated when empty)")
	cmd.Flags().String("endpoint", "", "Assignment-delivery endpoint to announce")
	cmd.Flags().IntP("slots", "s", 1, "Concurrent build steps this worker accepts")
	return cmd
}
