package cmd

import (
	"fmt"

	"github.com/queuectl/queuectl/internal/config"
	"github.com/queuectl/queuectl/internal/storage"
	"github.com/queuectl/queuectl/internal/supervisor"

	"github.com/spf13/cobra"
)

// StatusCmd implements `status`: worker running/stopped (read from the
// real pidfile), job counts by state, and the DLQ count.
func StatusCmd(store *storage.Store, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show worker status, job counts, and DLQ count",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := store.Counts()
			if err != nil {
				return fmt.Errorf("failed to get counts: %w", err)
			}

			fmt.Println("--- Job Queue Status ---")
			fmt.Printf("pending:    %d\n", counts.Pending)
			fmt.Printf("processing: %d\n", counts.Processing)
			fmt.Printf("failed:     %d\n", counts.Failed)
			fmt.Printf("completed:  %d\n", counts.Completed)
			fmt.Printf("dlq:        %d\n", counts.Dead)

			fmt.Println("--- Worker Status ---")
			pid, err := supervisor.ReadPID(cfg.PidPath())
			if err != nil || !supervisor.IsAlive(pid) {
				fmt.Println("workers: stopped")
				return nil
			}
			fmt.Printf("workers: running (supervisor pid %d)\n", pid)
			return nil
		},
	}
}
