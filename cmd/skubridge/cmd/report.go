package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/skubridge/skubridge/cmd/skubridge/app"
	"github.com/skubridge/skubridge/pkg/analytics"
	"github.com/skubridge/skubridge/pkg/store"
)

// newReportCmd builds the valuation report command over the persisted
// snapshot.
func newReportCmd() *cobra.Command {
	var limit int

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show category and valuation rollups from the persisted catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			items, err := store.New(config.StorePath).Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Items: %d  Total value: %d\n\n", len(items), analytics.TotalInventoryValue(items))

			breakdown := analytics.CategoryBreakdown(items)
			categories := make([]string, 0, len(breakdown))
			for category := range breakdown {
				categories = append(categories, category)
			}
			sort.Strings(categories)

			fmt.Fprintln(out, "By category:")
			for _, category := range categories {
				stats := breakdown[category]
				fmt.Fprintf(out, "  %-24s %4d items %6d units  value %d\n",
					category, stats.Items, stats.Units, stats.ValueMinor)
			}

			fmt.Fprintf(out, "\nTop %d by value:\n", limit)
			for _, entry := range analytics.TopItemsByValue(items, limit) {
				fmt.Fprintf(out, "  %-30s %6d units  value %d\n", entry.Key, entry.Units, entry.ValueMinor)
			}
			return nil
		},
	}

	reportCmd.Flags().IntVar(&limit, "limit", 10, "how many top items to show")

	return reportCmd
}
