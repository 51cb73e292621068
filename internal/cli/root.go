// Package cli provides the Cobra command structure for lintcore.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintcore/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root lintcore command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "lintcore",
		Short: "A fast, self-correcting source analysis engine",
		Long: `lintcore inspects source trees with a configurable set of checks,
records offenses with correction eligibility, and can automatically
correct what its checks know how to fix.

Corrections are applied safely: conflicting edits are filtered, writes
are atomic with concurrent-modification detection, and dry-run mode
shows the diff without touching files. Unfixable offenses can be
suppressed with inline todo directives instead.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newChecksCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newWatchCommand(info))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
