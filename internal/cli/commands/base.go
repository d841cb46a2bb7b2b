package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
)

var baseCmd = &cobra.Command{
	Use:   "base",
	Short: "Print the source repository of the current worktree",
	Long: `From inside a sprout-managed worktree, print the path of the
repository it was created from. Fails when the current directory is not
inside a tracked worktree. Wrap it to jump back:

    cd "$(sprout base)"`,
	Args: cobra.NoArgs,
	RunE: runBase,
}

func runBase(cmd *cobra.Command, args []string) error {
	_, manager, err := createManagers()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	base, err := manager.ResolveBase(cmd.Context(), cwd)
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsStructured() {
		return ui.GlobalFormatter.Output(map[string]string{
			"source_repo": base,
		})
	}

	fmt.Println(base)
	return nil
}
