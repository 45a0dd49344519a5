// Package cli provides the Cobra command structure for gridmark.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gridmark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootFlags are shared by all subcommands.
type rootFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root gridmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "gridmark",
		Short: "Live grid views for Markdown tables",
		Long: `gridmark renders the tables inside a Markdown document as grid views and
keeps them synchronized while the document changes.

Each table becomes a grid that survives edits elsewhere in the document:
views keep their identity across reconciliation passes, and a malformed
table degrades to an inline error box without disturbing its siblings.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand(flags))
	rootCmd.AddCommand(newWatchCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
