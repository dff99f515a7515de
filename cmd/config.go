package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/queuectl/queuectl/internal/apperr"
	"github.com/queuectl/queuectl/internal/config"

	"github.com/spf13/cobra"
)

// ConfigCmd implements `config show` and `config set <key> <value>`.
// The only recognized keys are max_retries and backoff_base, both integers.
func ConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (max_retries, backoff_base)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			switch key {
			case "max_retries":
				i, err := strconv.Atoi(value)
				if err != nil || i < 0 {
					return fmt.Errorf("invalid value for max_retries: %q: %w", value, apperr.ErrInvalidInput)
				}
				cfg.MaxRetries = i
			case "backoff_base":
				i, err := strconv.Atoi(value)
				if err != nil || i <= 0 {
					return fmt.Errorf("invalid value for backoff_base: %q: %w", value, apperr.ErrInvalidInput)
				}
				cfg.BackoffBase = i
			default:
				return fmt.Errorf("unknown config key: %q: %w", key, apperr.ErrInvalidInput)
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Printf("%s = %s\n", key, value)
			return nil
		},
	}

	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(setCmd)
	return configCmd
}
