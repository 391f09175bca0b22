package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RegisterCommand(func(*app) *cobra.Command {
		return &cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Args:  cobra.NoArgs,
			// The version needs no project config.
			PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "hyprbind version %s (built %s)\n", Version, BuildTime)
				return err
			},
		}
	})
}
