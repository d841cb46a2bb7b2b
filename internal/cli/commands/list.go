package commands

import (
	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all worktrees",
	Long: `List every registered worktree with its branch, path, and the time
of its most recent commit, most recently committed first. Entries whose
directories vanished outside sprout are marked dangling.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	_, manager, err := createManagers()
	if err != nil {
		return err
	}

	rows, err := manager.List(cmd.Context())
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsStructured() {
		return ui.GlobalFormatter.Output(rows)
	}

	ui.PrintWorktreeList(rows)
	return nil
}
