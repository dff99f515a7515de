package cmd

import (
	"fmt"

	"github.com/queuectl/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

// DlqCmd implements `dlq list` and `dlq retry <id>`, printing each dlq
// entry's id, attempts, and failed_at alongside its command. last_error is
// not printed.
func DlqCmd(store *storage.Store) *cobra.Command {
	dlqCmd := &cobra.Command{
		Use:   "dlq",
		Short: "Manage the Dead Letter Queue (DLQ)",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all entries in the DLQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := store.DLQList()
			if err != nil {
				return fmt.Errorf("failed to list dlq: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("Dead Letter Queue is empty.")
				return nil
			}

			fmt.Println("ID\tATTEMPTS\tFAILED_AT\tCOMMAND")
			for _, e := range entries {
				fmt.Printf("%s\t%d\t%s\t%s\n", e.ID, e.Attempts, e.FailedAt.Format("2006-01-02T15:04:05"), e.Command)
			}
			return nil
		},
	}

	retryCmd := &cobra.Command{
		Use:   "retry <job-id>",
		Short: "Move a DLQ entry back into the queue as pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]
			if err := store.DLQRetry(jobID); err != nil {
				return err
			}
			fmt.Printf("job %s moved from dlq to pending\n", jobID)
			return nil
		},
	}

	dlqCmd.AddCommand(listCmd)
	dlqCmd.AddCommand(retryCmd)
	return dlqCmd
}
