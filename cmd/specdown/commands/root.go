// Package commands provides the CLI commands for specdown.
package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"specdown/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "specdown",
	Short: "specdown - versioned OpenAPI to Markdown documentation",
	Long: `Specdown renders OpenAPI specifications to Markdown documentation and
keeps your project's version consistent everywhere it appears: the manifest,
the README, and an append-only version ledger that never regresses.

Quick Start:
  specdown init myapi       Create a new specdown project
  specdown generate         Render the OpenAPI spec to Markdown
  specdown serve            Preview the generated docs in a browser
  specdown bump patch       Advance the version and sync every reference
  specdown version history  Show every recorded version

Documentation: https://github.com/specdown/specdown`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Color output is for humans on terminals only
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation and LLM agents)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory containing specdown.yaml")

	// Commands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bumpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}
