package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "portfolio",
		Short:   "Portfolio DX data service",
		Version: version,
		Long: `portfolio seeds the DX portfolio data root, rebuilds the curated project
store from per-user project folders when none exists, and serves the result
over HTTP or MCP.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
