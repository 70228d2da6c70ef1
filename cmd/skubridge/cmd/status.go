package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skubridge/skubridge/cmd/skubridge/app"
	"github.com/skubridge/skubridge/pkg/catalog"
	"github.com/skubridge/skubridge/pkg/store"
)

// newStatusCmd builds the catalog status command over the persisted snapshot.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync state of the persisted catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			s := store.New(config.StorePath)
			items, err := s.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "Store %s is empty; run `skubridge sync` first\n", s.Path())
				return nil
			}

			counts := make(map[catalog.SyncState]int)
			for _, item := range items {
				counts[item.State]++
			}

			fmt.Fprintf(out, "Store:   %s\n", s.Path())
			fmt.Fprintf(out, "Items:   %d\n", len(items))
			fmt.Fprintf(out, "Synced:  %d\n", counts[catalog.StateSynced])
			fmt.Fprintf(out, "Pending: %d\n", counts[catalog.StatePending])
			fmt.Fprintf(out, "Error:   %d\n", counts[catalog.StateError])

			if counts[catalog.StateError] > 0 {
				fmt.Fprintln(out, "\nItems in error state:")
				for _, key := range items.Keys() {
					if items[key].State == catalog.StateError {
						fmt.Fprintf(out, "  %s\n", key)
					}
				}
			}
			return nil
		},
	}
}
