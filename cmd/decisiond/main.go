// Package main implements the decisiond daemon and one-shot evaluation CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath is the optional YAML config file.
	configPath string

	// version information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "decisiond",
	Short: "Decision engine and attention feed for investment research workflows",
	Long: `decisiond runs the global decision engine over a snapshot of research
workflow records (trade ideas, ratings, theses, projects) and serves the
prioritized result and attention feed over HTTP.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
}
