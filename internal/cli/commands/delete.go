package commands

import (
	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a worktree, its branch, and its registry entry",
	Long: `Remove the named worktree directory, delete its branch in the source
repository, and drop it from the registry. A worktree whose directory
already vanished is cleaned up from the backend records instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	_, manager, err := createManagers()
	if err != nil {
		return err
	}

	if err := manager.Remove(cmd.Context(), name); err != nil {
		return err
	}

	if ui.GlobalFormatter.IsStructured() {
		return ui.GlobalFormatter.Output(map[string]string{
			"deleted": name,
		})
	}

	ui.Success("Deleted worktree: %s", name)
	return nil
}
