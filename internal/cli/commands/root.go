// Package commands wires the sprout CLI verbs.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
)

var (
	flagFormat string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "sprout",
	Short: "Manage git worktrees from one central home",
	Long: `Sprout keeps git worktrees for all your repositories under a single
root directory and tracks them by name, so creating, jumping into, and
cleaning up feature branches never requires remembering paths.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := ui.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		return ui.SetGlobalFormatter(format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "pretty", "Output format (pretty, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(cdCmd)
	rootCmd.AddCommand(baseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
