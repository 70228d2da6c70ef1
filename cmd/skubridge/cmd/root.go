// Package cmd defines the skubridge command tree.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skubridge",
		Short: "Bidirectional product catalog reconciliation",
		Long: `skubridge keeps a canonical product and inventory catalog consistent
across two independent commerce platforms. Each cycle fetches both platform
snapshots, merges them by SKU, pushes missing items back out, and persists
the canonical catalog atomically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log warnings and errors")
	flags.String("config", "", "config file (default .skubridge.yaml)")
	flags.String("store-path", "", "canonical snapshot file path")
	flags.String("seed-a", "", "YAML seed file for the first platform")
	flags.String("seed-b", "", "YAML seed file for the second platform")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("store_path", flags.Lookup("store-path"))
	_ = viper.BindPFlag("seed_a", flags.Lookup("seed-a"))
	_ = viper.BindPFlag("seed_b", flags.Lookup("seed-b"))

	rootCmd.AddCommand(
		newSyncCmd(),
		newWatchCmd(),
		newStatusCmd(),
		newAlertsCmd(),
		newReportCmd(),
	)

	return rootCmd
}
