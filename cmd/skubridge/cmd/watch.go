package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skubridge/skubridge/cmd/skubridge/app"
)

// newWatchCmd builds the recurring reconciliation loop command.
func newWatchCmd() *cobra.Command {
	var interval time.Duration

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Run reconciliation on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New()
			if err != nil {
				return err
			}

			if interval == 0 {
				interval = application.Config.Interval
			}

			// Run one cycle up front so the catalog is current immediately.
			if result, err := application.Engine.RunOnce(cmd.Context()); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			}

			if err := application.Engine.Start(interval); err != nil {
				return err
			}

			<-cmd.Context().Done()

			// Cooperative shutdown: an in-flight cycle finishes first.
			return application.Engine.Stop()
		},
	}

	watchCmd.Flags().DurationVar(&interval, "interval", 0, "cycle interval (default from config)")

	return watchCmd
}
