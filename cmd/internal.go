package cmd

import (
	"fmt"

	"github.com/queuectl/queuectl/internal/config"
	"github.com/queuectl/queuectl/internal/storage"
	"github.com/queuectl/queuectl/internal/supervisor"
	"github.com/queuectl/queuectl/internal/worker"

	"github.com/spf13/cobra"
)

// internalCmd holds subcommands not meant to be invoked by a human — only
// by the Supervisor's self-exec, which is how this module spawns its
// independent worker OS processes.
func internalCmd() *cobra.Command {
	internal := &cobra.Command{
		Use:    "internal",
		Short:  "Internal plumbing commands",
		Hidden: true,
	}

	workerRun := &cobra.Command{
		Use:    "worker-run",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, _ := cmd.Flags().GetInt("index")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			maxRetries, _ := cmd.Flags().GetInt("max-retries")
			backoffBase, _ := cmd.Flags().GetInt("backoff-base")

			cfg := &config.Config{
				DataDir:     dataDir,
				MaxRetries:  maxRetries,
				BackoffBase: backoffBase,
			}

			store, err := storage.NewStore(cfg.DBPath())
			if err != nil {
				return fmt.Errorf("worker %d: open store: %w", index, err)
			}
			defer store.Close()

			w := worker.New(index, store, cfg)
			stop := supervisor.NewStopFlag(cfg.StopFlagPath())
			w.Run(stop)
			return nil
		},
	}
	workerRun.Flags().Int("index", 0, "worker index, for log prefixing only")
	workerRun.Flags().String("data-dir", "", "state directory shared with the supervisor")
	workerRun.Flags().Int("max-retries", 3, "max retries, fixed for this run by the supervisor at spawn time")
	workerRun.Flags().Int("backoff-base", 2, "backoff base, fixed for this run by the supervisor at spawn time")

	internal.AddCommand(workerRun)
	return internal
}
