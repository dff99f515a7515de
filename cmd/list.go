package cmd

import (
	"fmt"

	"github.com/queuectl/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

// ListCmd implements `list [--state S]`: an optional state filter, all
// jobs otherwise.
func ListCmd(store *storage.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _ := cmd.Flags().GetString("state")

			jobs, err := store.List(state)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			fmt.Println("ID\tATTEMPTS\tCOMMAND\tUPDATED_AT")
			for _, job := range jobs {
				fmt.Printf("%s\t%d\t%s\t%s\n", job.ID, job.Attempts, job.Command, job.UpdatedAt.Format("2006-01-02T15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().String("state", "", "Filter jobs by state (pending, processing, failed, completed)")
	return cmd
}
