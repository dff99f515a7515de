package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/config"
	"github.com/queuectl/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

// enqueueRequest is the job submission format: id optional, command
// required. Unrecognized fields are ignored by encoding/json's default
// unmarshal behavior.
type enqueueRequest struct {
	ID      string `json:"id"`
	Command string `json:"command"`
}

func EnqueueCmd(store *storage.Store, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "enqueue <job(json)>",
		Short: "Add a job to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req enqueueRequest
			if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
				return fmt.Errorf("invalid job json (%v): %w", err, apperr.ErrInvalidInput)
			}
			if req.Command == "" {
				return fmt.Errorf("job is missing required field \"command\": %w", apperr.ErrInvalidInput)
			}

			id, err := store.Enqueue(req.Command, req.ID)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
}
