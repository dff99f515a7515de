package cmd

import (
	"fmt"

	"github.com/queuectl/queuectl/internal/config"
	"github.com/queuectl/queuectl/internal/supervisor"

	"github.com/spf13/cobra"
)

// WorkerCmd implements `worker start [--count N]` and `worker stop`. Each
// worker runs as an independent OS process managed by a Supervisor (see
// internal/supervisor).
func WorkerCmd(cfg *config.Config) *cobra.Command {
	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage worker processes",
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start one or more worker processes in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")

			sv := supervisor.New(cfg, count)
			return sv.Start()
		},
	}
	startCmd.Flags().Int("count", 1, "Number of workers to start")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Signal a running supervisor to shut down",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := supervisor.Stop(cfg); err != nil {
				return err
			}
			fmt.Println("stop signal sent")
			return nil
		},
	}

	workerCmd.AddCommand(startCmd)
	workerCmd.AddCommand(stopCmd)
	return workerCmd
}
