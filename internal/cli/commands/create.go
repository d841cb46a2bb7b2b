package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
	"github.com/sprout-cli/sprout/internal/core/worktree"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new worktree from the current repository",
	Long: `Create a git worktree named <name> under the sprout worktrees root,
on a new branch made from the configured branch prefix plus the name.
The current directory must be inside the repository to branch from.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	_, manager, err := createManagers()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	entry, err := manager.Create(cmd.Context(), worktree.CreateOptions{
		Name:      name,
		SourceDir: cwd,
	})
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsStructured() {
		return ui.GlobalFormatter.Output(entry)
	}

	ui.Success("Created worktree: %s", entry.Name)
	ui.PrintWorktreeDetails(*entry)
	return nil
}
