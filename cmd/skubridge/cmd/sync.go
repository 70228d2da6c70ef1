package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skubridge/skubridge/cmd/skubridge/app"
)

// newSyncCmd builds the one-shot reconciliation command.
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one reconciliation cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New()
			if err != nil {
				return err
			}

			result, err := application.Engine.RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			for key, reason := range result.PushFailures {
				fmt.Fprintf(cmd.OutOrStdout(), "  push failed %s: %s\n", key, reason)
			}
			return nil
		},
	}
}
