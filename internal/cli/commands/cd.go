package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
)

var cdCmd = &cobra.Command{
	Use:   "cd <name>",
	Short: "Print the directory of a worktree",
	Long: `Print the absolute path of the named worktree on stdout. The shell
cannot change a parent process's directory, so wrap it:

    cd "$(sprout cd <name>)"`,
	Args: cobra.ExactArgs(1),
	RunE: runCd,
}

func runCd(cmd *cobra.Command, args []string) error {
	_, manager, err := createManagers()
	if err != nil {
		return err
	}

	path, err := manager.Path(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsStructured() {
		return ui.GlobalFormatter.Output(map[string]string{
			"name": args[0],
			"path": path,
		})
	}

	// Bare path only: stdout is consumed by command substitution
	fmt.Println(path)
	return nil
}
