package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "crewcanvas",
	Short: "Canvas engine for visual AI-workforce automations",
	Long: "crewcanvas edits and deploys AI-workforce automations as typed node graphs.\n" +
		"It serves a canvas over HTTP, lays out blueprints, and simulates deployments.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
