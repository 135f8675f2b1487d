// Package main provides the entry point for the geoready CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for geoready.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geoready",
		Short: "Audit a website's generative engine discovery readiness",
		Long: `geoready analyzes how ready a website is to be found, understood, and
cited by generative AI search engines (ChatGPT, Perplexity, Google AI
Overviews).

It crawls the home page plus the main menu pages (up to ten pages
total), runs nineteen readiness checks on each, and aggregates the
results into a 0-100 score. The detailed report is cached under a
report ID and can be emailed with the send command.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewSendCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
