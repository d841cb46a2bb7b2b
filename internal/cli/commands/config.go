package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write sprout configuration",
	Long: `Get and set configuration values in the sprout config file.

Known keys:
  branch_prefix   Prefix prepended to worktree names to form branch names
                  (default "sprout/")`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	configManager, _, err := createManagers()
	if err != nil {
		return err
	}

	value, err := configManager.Get(args[0])
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsStructured() {
		return ui.GlobalFormatter.Output(map[string]string{
			args[0]: value,
		})
	}

	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	configManager, _, err := createManagers()
	if err != nil {
		return err
	}

	if err := configManager.Set(key, value); err != nil {
		return err
	}

	if ui.GlobalFormatter.IsStructured() {
		return ui.GlobalFormatter.Output(map[string]string{
			key: value,
		})
	}

	ui.Success("Set %s = %q", key, value)
	return nil
}
