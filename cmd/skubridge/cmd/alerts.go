package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skubridge/skubridge/cmd/skubridge/app"
	"github.com/skubridge/skubridge/pkg/analytics"
	"github.com/skubridge/skubridge/pkg/store"
)

// newAlertsCmd builds the low-stock alerts command. It reads the persisted
// snapshot directly, so it works without running a cycle first.
func newAlertsCmd() *cobra.Command {
	var threshold int

	alertsCmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show low-stock alerts from the persisted catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if threshold < 0 {
				threshold = config.Threshold
			}

			items, err := store.New(config.StorePath).Load()
			if err != nil {
				return err
			}

			alerts := analytics.LowStockAlerts(items, threshold)
			if len(alerts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No items at or below %d units\n", threshold)
				return nil
			}

			for _, alert := range alerts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-30s %4d units (%s)\n",
					alert.Severity, alert.Key, alert.TotalQuantity, alert.DisplayName)
			}
			return nil
		},
	}

	alertsCmd.Flags().IntVar(&threshold, "threshold", -1, "alert threshold (default from config)")

	return alertsCmd
}
