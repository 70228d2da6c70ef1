// Package main provides the entry point for the skubridge CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/skubridge/skubridge/cmd/skubridge/app"
	"github.com/skubridge/skubridge/cmd/skubridge/cmd"
)

func main() {
	// Context with signal handling for graceful shutdown: watch loops stop
	// between cycles on SIGINT/SIGTERM.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
