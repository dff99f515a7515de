package cmd

import (
	"fmt"
	"os"

	"github.com/queuectl/queuectl/internal/config"
	"github.com/queuectl/queuectl/internal/storage"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "queuectl",
	Short:         "A CLI-based background job queue with retries and a dead letter queue",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute wires every subcommand and runs the CLI. store may be nil when
// the invoked subcommand doesn't need it (the hidden internal worker-run
// path opens its own Store instead, since it runs in a separate process).
func Execute(store *storage.Store, cfg *config.Config) {
	rootCmd.AddCommand(EnqueueCmd(store, cfg))
	rootCmd.AddCommand(ListCmd(store))
	rootCmd.AddCommand(StatusCmd(store, cfg))
	rootCmd.AddCommand(WorkerCmd(cfg))
	rootCmd.AddCommand(DlqCmd(store))
	rootCmd.AddCommand(ConfigCmd(cfg))
	rootCmd.AddCommand(internalCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
